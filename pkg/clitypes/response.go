package clitypes

// Status tags the outcome of a command execution.
type Status int

const (
	// StatusSuccess means the command completed normally
	StatusSuccess Status = iota
	// StatusError means the command failed
	StatusError
	// StatusInvalidArguments means the argument count or values were rejected
	StatusInvalidArguments
	// StatusInvalidPath means the path did not resolve
	StatusInvalidPath
	// StatusAccessDenied means the user level was too low
	StatusAccessDenied
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusInvalidArguments:
		return "invalid_arguments"
	case StatusInvalidPath:
		return "invalid_path"
	case StatusAccessDenied:
		return "access_denied"
	default:
		return "unknown"
	}
}

// Response is the result of a command execution together with presentation hints.
// Responses are built fresh per execution and passed by value.
type Response struct {
	Message    string // Text shown to the user, may contain '\n'
	Status     Status // Outcome tag
	ShowPrompt bool   // Whether the prompt is displayed afterwards
	Indent     bool   // Whether message lines are indented by the indent unit
	Newline    bool   // Whether a line break is written after the message
}

// NewResponse creates a response with the default presentation: prompt shown,
// message indented and terminated by a line break.
func NewResponse(message string, status Status) Response {
	return Response{
		Message:    message,
		Status:     status,
		ShowPrompt: true,
		Indent:     true,
		Newline:    true,
	}
}

// Success creates a successful response.
func Success(message string) Response {
	return NewResponse(message, StatusSuccess)
}

// Failure creates an error response.
func Failure(message string) Response {
	return NewResponse(message, StatusError)
}

// InvalidArguments creates a response rejecting the supplied arguments.
func InvalidArguments(message string) Response {
	return NewResponse(message, StatusInvalidArguments)
}

// IsSuccess reports whether the response carries StatusSuccess.
func (r Response) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Command is the capability of a leaf node in the namespace tree.
// Name and access level belong to the tree node the command is mounted on.
type Command interface {
	// Execute runs the command with the whitespace-separated arguments that followed its path.
	Execute(args []string) Response
	// Description returns a one-line summary for help listings.
	Description() string
	// Usage returns the argument syntax, e.g. "<r> <g> <b>".
	Usage() string
}
