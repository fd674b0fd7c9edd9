package validation

// Operation is the mandatory operation-context input to Validate
// (spec §9 Open Question, resolved: "make operation kind a mandatory
// input to the validation pipeline" rather than the teacher's uneven
// plumbing of a Create/Update distinction).
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
)

func (o Operation) String() string {
	if o == OperationUpdate {
		return "update"
	}
	return "create"
}

// Context carries everything phase 1-6 needs beyond the candidate
// JSON value and the schema registry: which operation is being
// validated, the resource type's base schema and required extensions
// (spec §3 ResourceType), and — for Update — the previously stored
// resource, so mutability checks (phase 6) can tell whether an
// immutable attribute actually changed (readOnly attributes are
// rejected whenever present, without consulting it).
type Context struct {
	Operation          Operation
	BaseSchema         string
	RequiredExtensions []string
	// Previous is the currently stored resource, required for
	// OperationUpdate so phase 6 can diff against it. Nil for Create.
	Previous map[string]interface{}
}
