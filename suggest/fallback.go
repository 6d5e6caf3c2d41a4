package suggest

import "coach-crm/models"

// Static suggestions served when the catalog is unreachable, keyed by
// client goal.
var fallbackTables = map[string][]models.SuggestedExercise{
	"Weight Loss": {
		{Name: "Burpees", Category: "Cardio", Description: "Full-body movement combining a squat, plank and jump. High calorie burn in short bursts."},
		{Name: "Jump Rope", Category: "Cardio", Description: "Steady skipping at a moderate pace. Great conditioning with minimal equipment."},
		{Name: "Mountain Climbers", Category: "Cardio", Description: "From a plank, drive knees toward the chest in alternation. Keeps the heart rate high."},
		{Name: "Kettlebell Swings", Category: "Conditioning", Description: "Hip-hinge swing to shoulder height. Works the posterior chain while taxing the lungs."},
		{Name: "Rowing Intervals", Category: "Cardio", Description: "Alternate hard 250m pulls with easy recovery strokes on the rowing machine."},
		{Name: "Incline Treadmill Walk", Category: "Cardio", Description: "Brisk walking at a steep incline. Low impact, sustained effort."},
	},
	"Muscle Gain": {
		{Name: "Barbell Back Squat", Category: "Legs", Description: "The foundational lower-body strength lift. Brace hard and sit between the hips."},
		{Name: "Bench Press", Category: "Chest", Description: "Press the bar from the chest with shoulder blades pinned. Control the descent."},
		{Name: "Deadlift", Category: "Back", Description: "Hinge and stand with a loaded bar. Keep the bar close and the spine neutral."},
		{Name: "Overhead Press", Category: "Shoulders", Description: "Strict standing press. Squeeze the glutes to protect the lower back."},
		{Name: "Barbell Row", Category: "Back", Description: "Row the bar to the lower ribs with a flat back. Pull with the elbows."},
		{Name: "Pull-ups", Category: "Back", Description: "Dead-hang pull-ups, chin over the bar. Add weight once bodyweight sets feel easy."},
	},
	"Endurance": {
		{Name: "Tempo Run", Category: "Running", Description: "Sustained run at a comfortably hard pace for 20-30 minutes."},
		{Name: "Cycling Long Ride", Category: "Cycling", Description: "Steady zone-2 ride of an hour or more. Builds the aerobic base."},
		{Name: "Swimming Laps", Category: "Swimming", Description: "Continuous freestyle laps with controlled breathing every third stroke."},
		{Name: "Stair Climbing", Category: "Cardio", Description: "Repeated flights at an even tempo. Strong legs and lungs together."},
		{Name: "Farmer's Carry", Category: "Conditioning", Description: "Walk with heavy dumbbells at the sides. Grip, core and work capacity."},
		{Name: "Interval Sprints", Category: "Running", Description: "Short hard sprints with full recovery between efforts."},
	},
	"Flexibility": {
		{Name: "Sun Salutation", Category: "Yoga", Description: "A flowing sequence linking breath to movement. Ideal warm-up or cool-down."},
		{Name: "Hip Flexor Stretch", Category: "Mobility", Description: "Half-kneeling stretch for the front of the hip. Hold 45 seconds per side."},
		{Name: "Hamstring Stretch", Category: "Mobility", Description: "Seated forward fold with a long spine. Reach from the hips, not the shoulders."},
		{Name: "Cat-Cow", Category: "Mobility", Description: "Alternate spinal flexion and extension on all fours, moving with the breath."},
		{Name: "Shoulder Dislocates", Category: "Mobility", Description: "Pass a band or dowel overhead with straight arms to open the shoulders."},
		{Name: "Deep Squat Hold", Category: "Mobility", Description: "Sit in the bottom of a squat, heels down, for accumulated minutes."},
	},
	"General Fitness": defaultFallback,
}

var defaultFallback = []models.SuggestedExercise{
	{Name: "Bodyweight Squat", Category: "Legs", Description: "Squat to parallel with heels planted. The all-purpose lower-body movement."},
	{Name: "Push-ups", Category: "Chest", Description: "Rigid plank from head to heels, chest to the floor and back up."},
	{Name: "Plank", Category: "Core", Description: "Hold a straight line on forearms and toes. Breathe, don't sag."},
	{Name: "Lunges", Category: "Legs", Description: "Alternating forward lunges, rear knee just off the floor."},
	{Name: "Glute Bridge", Category: "Core", Description: "Drive the hips up from the floor and squeeze at the top."},
	{Name: "Bird Dog", Category: "Core", Description: "Extend opposite arm and leg from all fours without tilting the hips."},
}
