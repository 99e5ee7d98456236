package models

// Routine represents a workout routine row. The exercise list is stored as a
// jsonb column rather than a child table; routines are small and always read
// whole.
type Routine struct {
	RoutineID     string `db:"routine_id"`
	Name          string `db:"name"`
	Difficulty    string `db:"difficulty"`
	Description   string `db:"description"`
	ExercisesJSON []byte `db:"exercises"`
	AuditFields
}
