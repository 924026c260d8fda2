// Package docs registers the OpenAPI 2.0 description of the ledger API with swag.
// Regenerate from the handler annotations with `swag init -g cmd/ledger_backend/main.go -o cmd/docs`.
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
        "/invoices": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Create an invoice",
                "parameters": [{"description": "Invoice details", "name": "invoice", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid input format or validation error"},
                    "404": {"description": "Referenced customer or supplier not found"}
                }
            }
        },
        "/invoices/search": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Search invoices",
                "parameters": [{"description": "Search parameters", "name": "query", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/invoices/customer-statement": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Customer statement",
                "parameters": [{"description": "Statement parameters", "name": "query", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing or malformed partyRef"}}
            }
        },
        "/invoices/supplier-statement": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Supplier statement",
                "parameters": [{"description": "Statement parameters", "name": "query", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing or malformed partyRef"}}
            }
        },
        "/invoices/{invoiceID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [{"type": "string", "description": "Invoice ID", "name": "invoiceID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed invoice ID"}, "404": {"description": "Invoice not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Update an invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "invoiceID", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "invoice", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input format or validation error"}, "404": {"description": "Invoice not found"}}
            }
        },
        "/payments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Record a payment",
                "parameters": [{"description": "Payment details", "name": "payment", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid amount, method or party reference"},
                    "404": {"description": "Party not found"},
                    "500": {"description": "A saga step failed"}
                }
            }
        },
        "/payments/{intentID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Get payment status",
                "parameters": [{"type": "string", "description": "Payment intent ID", "name": "intentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Payment intent not found"}}
            }
        },
        "/payments/{intentID}/resume": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Resume a payment",
                "parameters": [{"type": "string", "description": "Payment intent ID", "name": "intentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Payment intent not found"}, "500": {"description": "A saga step failed again"}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "List journal entries",
                "parameters": [
                    {"type": "string", "description": "Income or Expense", "name": "type", "in": "query"},
                    {"type": "string", "description": "customerPayment or supplierPayment", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid query parameters or token"}}
            }
        },
        "/customers/{partyID}/ledger": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Customer balance ledger",
                "parameters": [{"type": "string", "description": "Party ID", "name": "partyID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Party not found"}}
            }
        },
        "/suppliers/{partyID}/ledger": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Supplier balance ledger",
                "parameters": [{"type": "string", "description": "Party ID", "name": "partyID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Party not found"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Ledger API",
	Description:      "Invoice ledger and payment reconciliation backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
