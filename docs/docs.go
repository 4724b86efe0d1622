// Package docs holds the generated OpenAPI document served at /swagger.
// Code generated by swag. Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/animals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "List animals matching the given filter",
                "parameters": [
                    {"type": "string", "description": "comma separated statuses", "name": "status", "in": "query"},
                    {"type": "string", "description": "comma separated sexes", "name": "sex", "in": "query"},
                    {"type": "string", "description": "species:breed1|breed2, repeatable", "name": "breed", "in": "query"},
                    {"type": "string", "description": "admission period", "name": "admitted", "in": "query"},
                    {"type": "string", "description": "adoption period", "name": "adopted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Admit a new animal (staff only)",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/animals/{animalID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Get one animal's full record",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Update an animal's editable fields (staff only)",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["animals"],
                "summary": "Remove an animal and its requests (staff only)",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/animals/{animalID}/requests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "List the animal's pending adoption requests (staff only)",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Submit an adoption request for the animal",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/animals/{animalID}/passing": {
            "post": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Mark the animal passed away and reject pending requests (staff only)",
                "parameters": [
                    {"type": "string", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/requests/{requestID}/approve": {
            "post": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Approve a pending request and mark the animal adopted (staff only)",
                "parameters": [
                    {"type": "string", "name": "requestID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/requests/{requestID}/reject": {
            "post": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Reject a pending request (staff only)",
                "parameters": [
                    {"type": "string", "name": "requestID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/requests/{requestID}/revoke": {
            "post": {
                "tags": ["adoptions"],
                "summary": "Withdraw an own pending request",
                "parameters": [
                    {"type": "string", "name": "requestID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/adoptions/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "List requested animals with their pending requests (staff only)",
                "parameters": [
                    {"type": "string", "description": "comma separated sexes", "name": "sex", "in": "query"},
                    {"type": "string", "description": "species:breed1|breed2, repeatable", "name": "breed", "in": "query"},
                    {"type": "string", "description": "admission period", "name": "admitted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/me/requests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "List the authenticated customer's own requests",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/adoptions/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "List adopted animals with their approved requests (staff only)",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account and log in",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in with username and password",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Resolve the authenticated account",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animal Shelter Manager API",
	Description:      "Shelter animal records, adoption request lifecycle and accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
