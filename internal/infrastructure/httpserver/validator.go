package httpserver

// validatable is implemented by request payloads that check their own limits.
type validatable interface {
	Validate() error
}

// requestValidator adapts payload Validate methods to echo.Validator.
type requestValidator struct{}

func (v *requestValidator) Validate(i interface{}) error {
	if r, ok := i.(validatable); ok {
		return r.Validate()
	}
	return nil
}
