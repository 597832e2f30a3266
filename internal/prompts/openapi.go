package prompts

import "github.com/JaimeStill/promptvault/pkg/openapi"

type spec struct {
	List           *openapi.Operation
	Search         *openapi.Operation
	Create         *openapi.Operation
	Find           *openapi.Operation
	Update         *openapi.Operation
	Delete         *openapi.Operation
	ToggleFavorite *openapi.Operation
	Tags           *openapi.Operation
	Attach         *openapi.Operation
	Detach         *openapi.Operation
}

var (
	session   = []map[string][]string{{"session": {}}}
	idParam   = openapi.PathParam("id", "Prompt ID")
	listParam = append(
		openapi.PageParams(),
		openapi.QueryParam("favorites", "boolean", "Only favorites when true", false),
		openapi.QueryParam("tag", "string", "Only prompts carrying this tag ID", false),
	)
)

// Spec documents the prompt endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:    "List prompts",
		Parameters: listParam,
		Security:   session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Caller's prompts, most recently updated first", "PromptList"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Search: &openapi.Operation{
		Summary: "Search prompts",
		Parameters: append(
			[]*openapi.Parameter{openapi.QueryParam("q", "string", "Case-insensitive substring of content or title", true)},
			openapi.PageParams()...,
		),
		Security: session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Matching prompts", "PromptList"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a prompt",
		RequestBody: openapi.RequestBodyJSON("PromptCreate", true),
		Security:    session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created prompt", "PromptEnvelope"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a prompt",
		Parameters: []*openapi.Parameter{idParam},
		Security:   session,
		Responses:  ownedResponses("Prompt", "PromptEnvelope"),
	},
	Update: &openapi.Operation{
		Summary:     "Update a prompt",
		Description: "Only the provided fields change.",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("PromptUpdate", true),
		Security:    session,
		Responses:   withBadRequest(ownedResponses("Updated prompt", "PromptEnvelope")),
	},
	Delete: &openapi.Operation{
		Summary:     "Delete a prompt",
		Description: "Removes the prompt with its tag attachments and notes.",
		Parameters:  []*openapi.Parameter{idParam},
		Security:    session,
		Responses:   ownedResponses("Deleted", "Success"),
	},
	ToggleFavorite: &openapi.Operation{
		Summary:    "Toggle favorite",
		Parameters: []*openapi.Parameter{idParam},
		Security:   session,
		Responses:  ownedResponses("Updated prompt", "PromptEnvelope"),
	},
	Tags: &openapi.Operation{
		Summary:    "List a prompt's tags",
		Parameters: []*openapi.Parameter{idParam},
		Security:   session,
		Responses:  ownedResponses("Attached tags ordered by name", "PromptTags"),
	},
	Attach: &openapi.Operation{
		Summary:     "Attach a tag",
		Description: "Attaching a tag that is already attached succeeds without change.",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("AttachRequest", true),
		Security:    session,
		Responses:   withBadRequest(ownedResponses("Attached", "Success")),
	},
	Detach: &openapi.Operation{
		Summary: "Detach a tag",
		Parameters: []*openapi.Parameter{
			idParam,
			openapi.PathParam("tagId", "Tag ID"),
		},
		Security:  session,
		Responses: ownedResponses("Detached", "Success"),
	},
}

func ownedResponses(description, schema string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		200: openapi.ResponseJSON(description, schema),
		401: openapi.ResponseRef("Unauthorized"),
		403: openapi.ResponseRef("Forbidden"),
		404: openapi.ResponseRef("NotFound"),
	}
}

func withBadRequest(responses map[int]*openapi.Response) map[int]*openapi.Response {
	responses[400] = openapi.ResponseRef("BadRequest")
	return responses
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"user_id":     {Type: "string"},
				"content":     {Type: "string"},
				"title":       {Type: "string"},
				"source":      {Type: "string"},
				"is_favorite": {Type: "boolean"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"PromptEnvelope": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"prompt":  openapi.SchemaRef("Prompt"),
			},
		},
		"PromptList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"prompts": {Type: "array", Items: openapi.SchemaRef("Prompt")},
				"total":   {Type: "integer"},
				"limit":   {Type: "integer"},
				"offset":  {Type: "integer"},
			},
		},
		"PromptTags": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"tags":    {Type: "array", Items: openapi.SchemaRef("Tag")},
			},
		},
		"PromptCreate": {
			Type:     "object",
			Required: []string{"content"},
			Properties: map[string]*openapi.Schema{
				"content": {Type: "string", MinLength: openapi.Int(1)},
				"title":   {Type: "string"},
				"source":  {Type: "string"},
			},
		},
		"PromptUpdate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"content":     {Type: "string", MinLength: openapi.Int(1)},
				"title":       {Type: "string"},
				"source":      {Type: "string"},
				"is_favorite": {Type: "boolean"},
			},
		},
		"AttachRequest": {
			Type:     "object",
			Required: []string{"tagId"},
			Properties: map[string]*openapi.Schema{
				"tagId": {Type: "string"},
			},
		},
	}
}
