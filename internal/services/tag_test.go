package services

import (
	"context"
	"testing"

	"github.com/yungbote/contacts-backend/internal/apierr"
	"github.com/yungbote/contacts-backend/internal/types"
)

func TestReconcileTrimsDedupesCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tags, err := env.tagService.Reconcile(ctx, nil, []string{"a", "A", "a ", "", "  "})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Reconcile resolved %d tags, want 2", len(tags))
	}
	names := map[string]bool{}
	for _, tag := range tags {
		names[tag.Name] = true
	}
	if !names["a"] || !names["A"] {
		t.Fatalf("Reconcile names = %v, want a and A", names)
	}

	var count int64
	if err := env.db.Model(&types.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 2 {
		t.Fatalf("tag rows = %d, want 2", count)
	}
}

func TestReconcileIsIdempotentAcrossCalls(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.tagService.Reconcile(ctx, nil, []string{"vip", "friend"}); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	resolved, err := env.tagService.Reconcile(ctx, nil, []string{"friend", "work"})
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("second Reconcile resolved %d tags, want 2", len(resolved))
	}

	var count int64
	if err := env.db.Model(&types.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 3 {
		t.Fatalf("tag rows = %d, want 3 (vip, friend, work)", count)
	}
}

func TestCreateTagDuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: "vip"}); err != nil {
		t.Fatalf("first CreateTag: %v", err)
	}
	_, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: "vip"})
	if !apierr.IsConflict(err) {
		t.Fatalf("second CreateTag err = %v, want conflict", err)
	}

	var count int64
	if err := env.db.Model(&types.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 1 {
		t.Fatalf("tag rows = %d, want 1", count)
	}
}

func TestCreateTagIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: "vip"}); err != nil {
		t.Fatalf("CreateTag vip: %v", err)
	}
	if _, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: "VIP"}); err != nil {
		t.Fatalf("CreateTag VIP: %v", err)
	}
}

func TestCreateTagValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: ""})
	if !apierr.IsValidation(err) {
		t.Fatalf("CreateTag empty name err = %v, want validation", err)
	}
}

func TestListTagsOrderedByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := env.tagService.CreateTag(ctx, types.TagCreateInput{Name: name}); err != nil {
			t.Fatalf("CreateTag %s: %v", name, err)
		}
	}
	views, err := env.tagService.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	got := []string{}
	for _, view := range views {
		got = append(got, view.Name)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListTags order = %v, want %v", got, want)
		}
	}
}
