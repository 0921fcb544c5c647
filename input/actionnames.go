package input

import "github.com/lixenwraith/connect/geometry"

// actionRegistry maps canonical action names to bindable intents
// Used by the key binding loader to resolve configured action strings
var actionRegistry = map[string]Intent{
	// Unbind sentinel
	"none": {},

	"quit":        {Type: IntentQuit},
	"restart":     {Type: IntentRestart},
	"toggle_mute": {Type: IntentToggleMute},

	"move_up":         {Type: IntentMove, Direction: geometry.Up},
	"move_up_right":   {Type: IntentMove, Direction: geometry.UpRight},
	"move_right":      {Type: IntentMove, Direction: geometry.Right},
	"move_down_right": {Type: IntentMove, Direction: geometry.DownRight},
	"move_down":       {Type: IntentMove, Direction: geometry.Down},
	"move_down_left":  {Type: IntentMove, Direction: geometry.DownLeft},
	"move_left":       {Type: IntentMove, Direction: geometry.Left},
	"move_up_left":    {Type: IntentMove, Direction: geometry.UpLeft},

	"select": {Type: IntentSelect},
	"undo":   {Type: IntentUndo},
	"redo":   {Type: IntentRedo},
	"save":   {Type: IntentSave},
	"load":   {Type: IntentLoad},
}

// ActionIntent returns the intent bound to an action name
func ActionIntent(name string) (Intent, bool) {
	in, ok := actionRegistry[name]
	return in, ok
}

// ActionNames returns every bindable action name
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
