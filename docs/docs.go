// Package docs registers the Swagger document served at /swagger/*.
// The template follows swag's output layout; go generate ./cmd/server rebuilds it
// from the handler annotations.
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
        "/account": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Create account",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CreateAccountRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.CreateAccountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/services.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {"200": {"description": "Logout successful"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Identity"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.UpdateUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}}
            }
        },
        "/category-expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create category",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CreateCategoryRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Category"}}}
            }
        },
        "/expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "day", "in": "query"},
                    {"type": "string", "name": "createdById", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Expense"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Create expense",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CreateExpenseRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Expense"}}}
            }
        },
        "/expenses/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Expense report",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Report"}}}
            }
        },
        "/expenses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Get expense",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Expense"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Update expense",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.UpdateExpenseRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Expense"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Delete expense",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Expense"}}}
            }
        },
        "/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["audit"],
                "summary": "List audit logs",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AuditLog"}}}}
            }
        }
    },
    "definitions": {
        "models.AuditLog": {"type": "object", "properties": {"id": {"type": "string"}, "action": {"type": "string"}, "entity": {"type": "string"}, "entityId": {"type": "string"}, "data": {"type": "object"}, "userId": {"type": "string"}, "accountId": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.Category": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "color": {"type": "string"}, "icon": {"type": "string"}, "accountId": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.Expense": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "amount": {"type": "string"}, "description": {"type": "string"}, "date": {"type": "string"}, "categoryExpensesId": {"type": "string"}, "accountId": {"type": "string"}, "createdById": {"type": "string"}, "deletedAt": {"type": "string"}}},
        "models.User": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "accountId": {"type": "string"}}},
        "services.CreateAccountRequest": {"type": "object", "required": ["name", "email", "password", "passwordConfirmation"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "passwordConfirmation": {"type": "string"}}},
        "services.CreateAccountResponse": {"type": "object", "properties": {"account": {"type": "object"}, "user": {"$ref": "#/definitions/models.User"}}},
        "services.CreateCategoryRequest": {"type": "object", "required": ["name", "color", "icon"], "properties": {"name": {"type": "string"}, "color": {"type": "string"}, "icon": {"type": "string"}}},
        "services.CreateExpenseRequest": {"type": "object", "required": ["name", "amount", "description", "date", "categoryExpensesId"], "properties": {"name": {"type": "string"}, "amount": {"type": "string"}, "description": {"type": "string"}, "date": {"type": "string"}, "categoryExpensesId": {"type": "string"}}},
        "services.CreateUserRequest": {"type": "object", "required": ["name", "email", "role", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "password": {"type": "string"}}},
        "services.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "kind": {"type": "string"}, "details": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "services.Identity": {"type": "object", "properties": {"id": {"type": "string"}, "accountId": {"type": "string"}, "role": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
        "services.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "services.LoginResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "expiresAt": {"type": "string"}, "user": {"$ref": "#/definitions/models.User"}}},
        "services.Report": {"type": "object", "properties": {"topUser": {"type": "object"}, "topCategory": {"type": "object"}, "peakDay": {"type": "object"}}},
        "services.UpdateExpenseRequest": {"type": "object", "properties": {"name": {"type": "string"}, "amount": {"type": "string"}, "description": {"type": "string"}, "date": {"type": "string"}, "categoryExpensesId": {"type": "string"}}},
        "services.UpdateUserRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "password": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Spendwise Backend API",
	Description:      "Multi-tenant expense tracking API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
