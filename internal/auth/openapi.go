package auth

import "github.com/JaimeStill/promptvault/pkg/openapi"

type spec struct {
	Register *openapi.Operation
	Login    *openapi.Operation
	Logout   *openapi.Operation
	Me       *openapi.Operation
}

// Spec documents the auth endpoints.
var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register an account",
		Description: "Creates a user and sets the session cookie.",
		RequestBody: openapi.RequestBodyJSON("RegisterRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Registered user", "UserEnvelope"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		RequestBody: openapi.RequestBodyJSON("LoginRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated user", "UserEnvelope"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Logout: &openapi.Operation{
		Summary: "Log out",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session ended", "Success"),
		},
	},
	Me: &openapi.Operation{
		Summary:  "Current user",
		Security: []map[string][]string{{"session": {}}},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated user", "UserEnvelope"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"name":       {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"UserEnvelope": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"user":    openapi.SchemaRef("User"),
			},
		},
		"RegisterRequest": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", MinLength: openapi.Int(8), MaxLength: openapi.Int(MaxPasswordLength)},
				"name":     {Type: "string"},
			},
		},
		"LoginRequest": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string"},
				"password": {Type: "string"},
			},
		},
	}
}
