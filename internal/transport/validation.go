package transport

import (
	"pc-park/internal/checkout"
	"pc-park/internal/middleware"
)

// The request validator shares the checkout's shipping rules.
func init() {
	if err := middleware.RegisterValidation(checkout.PhoneTag, checkout.ValidatePhone, checkout.PhoneMessage); err != nil {
		panic(err)
	}
}
