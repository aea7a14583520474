package audit

// TrackedFields is the closed set of scalar contact fields that produce
// change-log rows. Tag-set changes are deliberately not audited.
var TrackedFields = []string{"name", "email", "phone", "favorite"}

type Change struct {
	Field    string
	OldValue string
	NewValue string
}

// FieldSet maps a tracked field name to its stringified value. Absence of a
// key means the field was not supplied, which is different from an empty
// string value.
type FieldSet map[string]string

// Diff emits one Change per tracked field that is present in after and
// differs from its before value. The before set must be snapshotted prior to
// any mutation of the live row, otherwise a field would be compared against
// itself.
func Diff(before, after FieldSet) []Change {
	var changes []Change
	for _, f := range TrackedFields {
		newVal, supplied := after[f]
		if !supplied {
			continue
		}
		oldVal := before[f]
		if newVal != oldVal {
			changes = append(changes, Change{Field: f, OldValue: oldVal, NewValue: newVal})
		}
	}
	return changes
}
