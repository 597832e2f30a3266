package notes

import "github.com/JaimeStill/promptvault/pkg/openapi"

var (
	session = []map[string][]string{{"session": {}}}

	listSpec = &openapi.Operation{
		Summary:    "List a prompt's notes",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
		Security:   session,
		Responses:  noteResponses("Notes, oldest first", "NoteList"),
	}

	createSpec = &openapi.Operation{
		Summary:     "Add a note to a prompt",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
		RequestBody: openapi.RequestBodyJSON("NoteCommand", true),
		Security:    session,
		Responses:   noteResponses("Created note", "NoteEnvelope"),
	}

	findSpec = &openapi.Operation{
		Summary:    "Get a note",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Note ID")},
		Security:   session,
		Responses:  noteResponses("Note", "NoteEnvelope"),
	}

	updateSpec = &openapi.Operation{
		Summary:     "Update a note",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Note ID")},
		RequestBody: openapi.RequestBodyJSON("NoteCommand", true),
		Security:    session,
		Responses:   noteResponses("Updated note", "NoteEnvelope"),
	}

	deleteSpec = &openapi.Operation{
		Summary:    "Delete a note",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Note ID")},
		Security:   session,
		Responses:  noteResponses("Deleted", "Success"),
	}

	schemas = map[string]*openapi.Schema{
		"Note": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string"},
				"prompt_id":  {Type: "string"},
				"content":    {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"NoteEnvelope": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"note":    openapi.SchemaRef("Note"),
			},
		},
		"NoteList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"notes":   {Type: "array", Items: openapi.SchemaRef("Note")},
			},
		},
		"NoteCommand": {
			Type:     "object",
			Required: []string{"content"},
			Properties: map[string]*openapi.Schema{
				"content": {Type: "string", MinLength: openapi.Int(1)},
			},
		},
	}
)

func noteResponses(description, schema string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		200: openapi.ResponseJSON(description, schema),
		401: openapi.ResponseRef("Unauthorized"),
		403: openapi.ResponseRef("Forbidden"),
		404: openapi.ResponseRef("NotFound"),
	}
}
