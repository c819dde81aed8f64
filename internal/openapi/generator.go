// Package openapi generates the OpenAPI 3.1 description of the Vitrine API:
// the public content reads, the contact form, and the gate-guarded admin
// surface with its two credential channels (session cookie and bearer token).
package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/service"
)

// Generate builds the full API spec.
func Generate() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Vitrine API",
			Description: "Personal-portfolio CMS: public content reads plus a single-operator admin API.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			{URL: "/"},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	// Two channels carry the admin token; the cookie wins when both are set.
	doc.Components.SecuritySchemes["cookieAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type: "apiKey",
			In:   "cookie",
			Name: service.AdminTokenCookie,
		},
	}
	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Paths = openapi3.NewPaths()

	doc.Components.Schemas["ErrorResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"error": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
		},
	}
	doc.Components.Schemas["Admin"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":    &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}},
				"email": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"name":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"role":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
		},
	}
	doc.Components.Schemas["Document"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:                 &openapi3.Types{"object"},
			Description:          "A content record: schemaless payload fields plus server-managed id and timestamps.",
			AdditionalProperties: openapi3.AdditionalProperties{Has: boolPtr(true)},
		},
	}

	addSessionPaths(doc)
	addStatsPaths(doc)
	addMessagePath(doc)
	addUploadPath(doc)
	for _, c := range model.PublicCollections {
		addCollectionPaths(doc, c)
	}
	addAdminMessageListPath(doc)

	return doc
}

func addSessionPaths(doc *openapi3.T) {
	loginBody := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"email", "password"},
			Properties: openapi3.Schemas{
				"email":    &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"password": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
		},
	}
	loginResponse := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
				"token":   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"admin":   openapi3.NewSchemaRef("#/components/schemas/Admin", nil),
			},
		},
	}

	doc.Paths.Set("/api/v1/admin/login", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"session"},
			Summary:     "Log in",
			Description: "Exchange operator credentials for an admin token, also set as an HTTP-only cookie.",
			OperationID: "login",
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(loginBody),
				},
			},
			Responses: newResponses("200", "Issued token and admin identity", loginResponse),
		},
	})
	doc.Paths.Set("/api/v1/admin/logout", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"session"},
			Summary:     "Log out",
			Description: "Clear the session cookie. Issued tokens stay valid until expiry.",
			OperationID: "logout",
			Responses:   newResponses("200", "Cookie cleared", successSchema()),
		},
	})
	doc.Paths.Set("/api/v1/admin/me", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"session"},
			Summary:     "Current admin identity",
			OperationID: "me",
			Security:    adminSecurity(),
			Responses:   newResponses("200", "Admin identity from the verified token", openapi3.NewSchemaRef("#/components/schemas/Admin", nil)),
		},
	})
}

func addCollectionPaths(doc *openapi3.T, name string) {
	docRef := openapi3.NewSchemaRef("#/components/schemas/Document", nil)
	listSchema := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"resource": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type:  &openapi3.Types{"array"},
						Items: docRef,
					},
				},
				"meta": metaSchema(),
			},
		},
	}

	doc.Paths.Set("/api/v1/"+name, &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("List %s", name),
			OperationID: "list_" + name,
			Parameters:  listQueryParameters(),
			Responses:   newResponses("200", fmt.Sprintf("Documents in %s", name), listSchema),
		},
	})
	doc.Paths.Set("/api/v1/"+name+"/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("Get one of %s", name),
			OperationID: "get_" + name,
			Parameters:  idParameter(),
			Responses:   newResponses("200", "The document", docRef),
		},
	})

	reqBody := &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content:  openapi3.NewContentWithJSONSchemaRef(docRef),
		},
	}
	doc.Paths.Set("/api/v1/admin/"+name, &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("List %s (admin)", name),
			OperationID: "admin_list_" + name,
			Security:    adminSecurity(),
			Parameters:  listQueryParameters(),
			Responses:   newResponses("200", fmt.Sprintf("Documents in %s", name), listSchema),
		},
		Post: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("Create in %s", name),
			OperationID: "create_" + name,
			Security:    adminSecurity(),
			RequestBody: reqBody,
			Responses:   newResponses("201", "Created document", docRef),
		},
	})
	doc.Paths.Set("/api/v1/admin/"+name+"/{id}", &openapi3.PathItem{
		Put: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("Update in %s", name),
			OperationID: "update_" + name,
			Security:    adminSecurity(),
			Parameters:  idParameter(),
			RequestBody: reqBody,
			Responses:   newResponses("200", "Updated document", docRef),
		},
		Delete: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("Delete from %s", name),
			OperationID: "delete_" + name,
			Security:    adminSecurity(),
			Parameters:  idParameter(),
			Responses:   newResponses("200", "Deleted", successSchema()),
		},
	})
}

func addStatsPaths(doc *openapi3.T) {
	statsRef := openapi3.NewSchemaRef("#/components/schemas/Document", nil)
	doc.Paths.Set("/api/v1/stats", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"stats"},
			Summary:     "Site stats",
			OperationID: "get_stats",
			Responses:   newResponses("200", "The stats document", statsRef),
		},
	})
	doc.Paths.Set("/api/v1/stats/view", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"stats"},
			Summary:     "Record a page view",
			OperationID: "record_view",
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content: openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
						Value: &openapi3.Schema{
							Type:     &openapi3.Types{"object"},
							Required: []string{"page"},
							Properties: openapi3.Schemas{
								"page": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
							},
						},
					}),
				},
			},
			Responses: newResponses("202", "View counted", successSchema()),
		},
	})
	doc.Paths.Set("/api/v1/admin/stats", &openapi3.PathItem{
		Put: &openapi3.Operation{
			Tags:        []string{"stats"},
			Summary:     "Replace stats",
			Description: "Replaces the operator-maintained stats fields; server-owned view counters are preserved.",
			OperationID: "put_stats",
			Security:    adminSecurity(),
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(statsRef),
				},
			},
			Responses: newResponses("200", "Updated stats document", statsRef),
		},
	})
}

func addMessagePath(doc *openapi3.T) {
	body := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"email", "message"},
			Properties: openapi3.Schemas{
				"name":    &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"email":   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"subject": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"message": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
		},
	}
	doc.Paths.Set("/api/v1/messages", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"messages"},
			Summary:     "Submit a contact message",
			Description: "Public contact form. Rate limited per IP.",
			OperationID: "submit_message",
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(body),
				},
			},
			Responses: newResponses("201", "Message stored", successSchema()),
		},
	})
}

func addAdminMessageListPath(doc *openapi3.T) {
	// Messages are operator-only: list/delete live under /admin, handled by
	// the generic collection routes.
	addAdminOnlyCollection(doc, model.CollectionMessages)
}

func addAdminOnlyCollection(doc *openapi3.T, name string) {
	docRef := openapi3.NewSchemaRef("#/components/schemas/Document", nil)
	listSchema := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"resource": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type:  &openapi3.Types{"array"},
						Items: docRef,
					},
				},
				"meta": metaSchema(),
			},
		},
	}
	doc.Paths.Set("/api/v1/admin/"+name, &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("List %s (admin)", name),
			OperationID: "admin_list_" + name,
			Security:    adminSecurity(),
			Parameters:  listQueryParameters(),
			Responses:   newResponses("200", fmt.Sprintf("Documents in %s", name), listSchema),
		},
	})
	doc.Paths.Set("/api/v1/admin/"+name+"/{id}", &openapi3.PathItem{
		Delete: &openapi3.Operation{
			Tags:        []string{name},
			Summary:     fmt.Sprintf("Delete from %s", name),
			OperationID: "delete_" + name,
			Security:    adminSecurity(),
			Parameters:  idParameter(),
			Responses:   newResponses("200", "Deleted", successSchema()),
		},
	})
}

func addUploadPath(doc *openapi3.T) {
	doc.Paths.Set("/api/v1/admin/upload", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"uploads"},
			Summary:     "Upload an image",
			Description: "Multipart image upload; responds with the URL the image is served from.",
			OperationID: "upload_image",
			Security:    adminSecurity(),
			Responses: newResponses("201", "Stored image URL", &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: &openapi3.Types{"object"},
					Properties: openapi3.Schemas{
						"success": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
						"url":     &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
					},
				},
			}),
		},
	})
}

// ---------------------------------------------------------------------------
// Shared pieces
// ---------------------------------------------------------------------------

func adminSecurity() *openapi3.SecurityRequirements {
	reqs := openapi3.SecurityRequirements{
		{"cookieAuth": {}},
		{"bearerAuth": {}},
	}
	return &reqs
}

func successSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
			},
		},
	}
}

func metaSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"count":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}},
				"total":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}},
				"limit":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}},
				"offset": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}},
			},
		},
	}
}

func listQueryParameters() openapi3.Parameters {
	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("limit").
				WithDescription("Maximum number of documents to return (1-200).").
				WithSchema(&openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}),
		},
		&openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter("offset").
				WithDescription("Number of documents to skip.").
				WithSchema(&openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}),
		},
	}
}

func idParameter() openapi3.Parameters {
	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: openapi3.NewPathParameter("id").
				WithDescription("Document id.").
				WithSchema(openapi3.NewStringSchema()),
		},
	}
}

func newResponses(statusCode, description string, schema *openapi3.SchemaRef) *openapi3.Responses {
	responses := openapi3.NewResponses()

	successDesc := description
	responses.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &successDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(schema),
		},
	})

	errorRef := openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil)

	badReqDesc := "Bad request"
	responses.Set("400", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &badReqDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
		},
	})

	unauthDesc := "Unauthorized"
	responses.Set("401", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &unauthDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
		},
	})

	notFoundDesc := "Not found"
	responses.Set("404", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &notFoundDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
		},
	})

	return responses
}

func boolPtr(b bool) *bool {
	return &b
}
