package ocpi

// StatusCode is an OCPI status code carried in the response envelope.
type StatusCode int

// Status codes.
const (
	StatusSuccess StatusCode = 1000

	StatusClientError          StatusCode = 2000
	StatusInvalidParameters    StatusCode = 2001
	StatusNotEnoughInformation StatusCode = 2002
	StatusUnknownLocation      StatusCode = 2003
	StatusUnknownToken         StatusCode = 2004

	StatusServerError          StatusCode = 3000
	StatusUnableToUseClientAPI StatusCode = 3001
	StatusUnsupportedVersion   StatusCode = 3002
	StatusNoMatchingEndpoints  StatusCode = 3003

	StatusHubError          StatusCode = 4000
	StatusUnknownReceiver   StatusCode = 4001
	StatusTimeoutOnForward  StatusCode = 4002
	StatusConnectionProblem StatusCode = 4003
)

// IsSuccess reports whether the code is in the 1xxx range.
func (c StatusCode) IsSuccess() bool { return c >= 1000 && c < 2000 }

// IsClientError reports whether the code is in the 2xxx range.
func (c StatusCode) IsClientError() bool { return c >= 2000 && c < 3000 }

// IsServerError reports whether the code is in the 3xxx range.
func (c StatusCode) IsServerError() bool { return c >= 3000 && c < 4000 }

// IsHubError reports whether the code is in the 4xxx range.
func (c StatusCode) IsHubError() bool { return c >= 4000 && c < 5000 }

// Class returns a lowercase description of the code range.
func (c StatusCode) Class() string {
	switch {
	case c.IsSuccess():
		return "success"
	case c.IsClientError():
		return "client_error"
	case c.IsServerError():
		return "server_error"
	case c.IsHubError():
		return "hub_error"
	default:
		return "unknown"
	}
}
