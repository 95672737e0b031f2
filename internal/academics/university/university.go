// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package university manages the top level of the academic catalogue.

Every college, department, study year, subject, and curriculum ultimately
hangs off a university. Reads are public; mutations are restricted to
administrators at the routing layer.
*/
package university

import "time"

// University is the root entity of the academic catalogue.
type University struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	LogoKey     string    `json:"logo_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldLogo        = "logo"
)
