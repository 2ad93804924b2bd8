package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound      = errors.New("data not found")
	ErrConflictingData   = errors.New("data conflicts with existing data in unique column")
	ErrStaleOrderVersion = errors.New("order was modified by a concurrent writer")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrOrderNoItems         = errors.New("order has no items")
	ErrOrderBadQuantity     = errors.New("order item quantity must be positive")
	ErrOrderBadPrice        = errors.New("order item price is not valid")
	ErrOrderBadAmount       = errors.New("order total must be positive")
	ErrOrderAmountMismatch  = errors.New("order total does not match line items")
	ErrPaymentMethodUnknown = errors.New("payment method is not supported")
	ErrPaymentGateway       = errors.New("payment gateway request failed")
)
