package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reconciler Errors (E101-E119)
	// ============================================

	"E101": {
		Category: CategoryReconcile,
		Message:  "Component node replaced in place",
		Detail:   "Component nodes own no presentation element, so they never take part in a replace. A component and an element or text cannot trade places at one position; toggle the component with an absent child instead.",
	},
	"E102": {
		Category: CategoryState,
		Message:  "State hook used outside a component",
		Detail:   "UseState must be called with the Scope handed to a component function while that function runs.",
	},
	"E103": {
		Category: CategoryState,
		Message:  "State set during render",
		Detail:   "A state setter ran while a render pass was in progress. Setters may only be called from event handlers or other code running outside a render.",
	},
	"E104": {
		Category: CategoryCanvas,
		Message:  "Unknown handle",
		Detail:   "The handle does not refer to an element of this canvas.",
	},

	// ============================================
	// Config Errors (E201-E219)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "retain.json could not be read or parsed.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid GC settings",
		Detail:   "The garbage collection threshold must be positive and the policy one of entry, commit or manual.",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Invalid live server settings",
		Detail:   "The port must be between 1 and 65535 and the codec one of json or msgpack.",
	},

	// ============================================
	// Protocol Errors (E301-E319)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Frame decode failed",
		Detail:   "The client sent a frame that could not be decoded with the session codec.",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
		Detail:   "The client sent an event type the session does not handle.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
