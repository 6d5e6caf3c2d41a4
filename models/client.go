package models

// Client is a fitness-program member tracked by the CRM.
// JSON field names are the persisted wire format, do not rename.
type Client struct {
	ID              string          `json:"id"`
	FullName        string          `json:"fullName"`
	Age             int             `json:"age"`
	Gender          string          `json:"gender"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Goal            string          `json:"goal"`
	GoalText        string          `json:"goalText,omitempty"`
	StartDate       string          `json:"startDate"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	ExerciseHistory []ExerciseEntry `json:"exerciseHistory"`
}

// ExerciseEntry is a logged past workout session. Entries are
// append-only; insertion order is the chronological order.
type ExerciseEntry struct {
	ID    string   `json:"id"`
	Date  string   `json:"date"`
	Title string   `json:"title"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

// SuggestedExercise is a catalog-sourced recommendation. Never persisted.
type SuggestedExercise struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
}

var Genders = []string{"Male", "Female", "Other"}

var Goals = []string{
	"Weight Loss",
	"Muscle Gain",
	"Endurance",
	"Flexibility",
	"General Fitness",
}
