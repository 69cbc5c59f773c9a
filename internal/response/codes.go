package response

// SuccessCode identifies a successful outcome. The values are shared with
// the student and payment services and must not change.
type SuccessCode int

const (
	CreateTuition        SuccessCode = 2000
	CreateStudent        SuccessCode = 2001
	AddTuitionStudent    SuccessCode = 2002
	ReadTuition          SuccessCode = 2003
	DeleteTuition        SuccessCode = 2004
	DeleteStudent        SuccessCode = 2005
	GetStudent           SuccessCode = 2006
	RemoveTuitionStudent SuccessCode = 2007
	ReturnedAllTuition   SuccessCode = 2008
	ReturnedAllStudent   SuccessCode = 2009
	LoginStudent         SuccessCode = 2010
)

// Message returns the human-readable message for a success code.
func (c SuccessCode) Message() string {
	switch c {
	case CreateTuition:
		return "Successfully created the tuition"
	case CreateStudent:
		return "Successfully created the student"
	case AddTuitionStudent:
		return "Successfully added student to tuition"
	case ReadTuition:
		return "Successfully read the tuition"
	case DeleteTuition:
		return "Successfully deleted the tuition"
	case DeleteStudent:
		return "Successfully deleted the student"
	case GetStudent:
		return "Successfully retrieved the student"
	case RemoveTuitionStudent:
		return "Successfully removed student from tuition"
	case ReturnedAllTuition:
		return "Successfully returned tuition list"
	case ReturnedAllStudent:
		return "Successfully returned students list"
	case LoginStudent:
		return "Successfully logged in the student"
	default:
		return "Success"
	}
}

// ErrCode identifies a failure outcome. Shared across services like SuccessCode.
type ErrCode int

const (
	// ─── Client errors ─────────────────────────────────────────────────
	ErrMissingRequiredFields         ErrCode = 4001
	ErrTuitionAlreadyExists          ErrCode = 4002
	ErrStudentAlreadyExists          ErrCode = 4003
	ErrTuitionNotFound               ErrCode = 4004
	ErrStudentNotFound               ErrCode = 4005
	ErrStudentNotEnrolledInTuition   ErrCode = 4006
	ErrStudentAlreadyEnrolledTuition ErrCode = 4007
	ErrUsernamePasswordNotMatch      ErrCode = 4008
	ErrUnauthorized                  ErrCode = 4010

	// ─── Server errors ─────────────────────────────────────────────────
	ErrInternal        ErrCode = 5000
	ErrStudentInternal ErrCode = 5001
	ErrPaymentInternal ErrCode = 5002
)

// Message returns the human-readable message for an error code.
func (c ErrCode) Message() string {
	switch c {
	case ErrMissingRequiredFields:
		return "Missing required fields"
	case ErrTuitionAlreadyExists:
		return "Tuition with given name already exists"
	case ErrStudentAlreadyExists:
		return "Student already exists with given id"
	case ErrTuitionNotFound:
		return "Tuition not found"
	case ErrStudentNotFound:
		return "Student not found"
	case ErrStudentNotEnrolledInTuition:
		return "Student not enrolled in tuition"
	case ErrStudentAlreadyEnrolledTuition:
		return "Student already enrolled in a tuition"
	case ErrUsernamePasswordNotMatch:
		return "Username and password do not match"
	case ErrUnauthorized:
		return "Missing or invalid bearer token"
	case ErrStudentInternal:
		return "Student Service - Internal Server Error"
	case ErrPaymentInternal:
		return "Payment Service - Internal Server Error"
	default:
		return "Internal Server Error"
	}
}
