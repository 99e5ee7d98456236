package domain

import "time"

// RoutineDifficulty grades a workout routine.
type RoutineDifficulty string

const (
	DifficultyBeginner     RoutineDifficulty = "BEGINNER"
	DifficultyIntermediate RoutineDifficulty = "INTERMEDIATE"
	DifficultyAdvanced     RoutineDifficulty = "ADVANCED"
)

// Exercise is a single entry within a routine.
type Exercise struct {
	ExerciseID string `json:"exerciseID"`
	Name       string `json:"name"`
	Machine    string `json:"machine"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"` // Free text, e.g. "12" or "8-10"
	Notes      string `json:"notes"`
}

// Routine is a reusable workout plan staff assign to clients.
type Routine struct {
	RoutineID   string            `json:"routineID"`
	Name        string            `json:"name"`
	Difficulty  RoutineDifficulty `json:"difficulty"`
	Description string            `json:"description"`
	Exercises   []Exercise        `json:"exercises"`
	AuditFields
}

const routineCycleDays = 7

const millisPerDay = 24 * 60 * 60 * 1000

// CurrentRoutineDay computes which day (1-7) of the weekly routine cycle
// applies on the given day, based on whole days elapsed since the start date.
//
// The elapsed-day count floors the millisecond difference, and the modulo is
// Euclidean: a start date in the future (clock skew, backdated assignment)
// still lands in [1,7] instead of going negative, which Go's truncating %
// would do on its own.
func CurrentRoutineDay(startDate, today time.Time) int {
	elapsedMillis := today.Sub(startDate).Milliseconds()
	days := elapsedMillis / millisPerDay
	if elapsedMillis < 0 && elapsedMillis%millisPerDay != 0 {
		days-- // Floor toward negative infinity
	}
	mod := days % routineCycleDays
	if mod < 0 {
		mod += routineCycleDays
	}
	return int(mod) + 1
}
