package automation

import "strings"

// keyAliases maps browser KeyboardEvent.key values and common short names onto robotgo key names
var keyAliases = map[string]string{
	"return":     "enter",
	"escape":     "esc",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"spacebar":   "space",
	"pgup":       "pageup",
	"pgdn":       "pagedown",
	"del":        "delete",
	"ins":        "insert",
	"control":    "ctrl",
	"option":     "alt",
	"meta":       "cmd",
	"command":    "cmd",
	"win":        "cmd",
	"super":      "cmd",
	"prtsc":      "printscreen",
	"prntscrn":   "printscreen",
	"volumeup":   "audio_vol_up",
	"volumedown": "audio_vol_down",
	"volumemute": "audio_mute",
	"playpause":  "audio_play",
}

// NormalizeKey converts a client key name into the name robotgo expects
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
