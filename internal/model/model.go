// Package model holds the request, response and record types shared by the
// HTTP layer, the services and the background jobs.
package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()
