package tags

import "github.com/JaimeStill/promptvault/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var session = []map[string][]string{{"session": {}}}

// Spec documents the tag endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:    "List tags",
		Parameters: openapi.PageParams(),
		Security:   session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Caller's tags ordered by name", "TagList"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a tag",
		RequestBody: openapi.RequestBodyJSON("TagCreate", true),
		Security:    session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created tag", "TagEnvelope"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a tag",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Tag ID")},
		Security:   session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Tag", "TagEnvelope"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update a tag",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Tag ID")},
		RequestBody: openapi.RequestBodyJSON("TagUpdate", true),
		Security:    session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated tag", "TagEnvelope"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete a tag",
		Description: "Detaches the tag from every prompt before removing it.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Tag ID")},
		Security:    session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deleted", "Success"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Tag": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      {Type: "string"},
				"user_id": {Type: "string"},
				"name":    {Type: "string"},
				"color":   {Type: "string", Example: "#3366ff"},
			},
		},
		"TagEnvelope": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"tag":     openapi.SchemaRef("Tag"),
			},
		},
		"TagList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"tags":    {Type: "array", Items: openapi.SchemaRef("Tag")},
				"total":   {Type: "integer"},
				"limit":   {Type: "integer"},
				"offset":  {Type: "integer"},
			},
		},
		"TagCreate": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":  {Type: "string", MaxLength: openapi.Int(100)},
				"color": {Type: "string", Pattern: "^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$"},
			},
		},
		"TagUpdate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":  {Type: "string", MaxLength: openapi.Int(100)},
				"color": {Type: "string", Pattern: "^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$"},
			},
		},
	}
}
