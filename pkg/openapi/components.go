package openapi

import "maps"

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
			"Success": {
				Type: "object",
				Properties: map[string]*Schema{
					"success": {Type: "boolean", Example: true},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   errorResponse("Invalid request"),
			"Unauthorized": errorResponse("Authentication required"),
			"Forbidden":    errorResponse("Resource belongs to another user"),
			"NotFound":     errorResponse("Resource not found"),
			"Conflict":     errorResponse("Resource conflict (duplicate value)"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}
