// Package docs holds the OpenAPI document served at /swagger/index.html.
// Regenerate with: swag init -g cmd/product-service/main.go
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
        "/api/v1/products": {
            "get": {
                "description": "Name matches when it is a prefix or suffix of the product name. Tag must match exactly.",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "list products",
                "parameters": [
                    {"type": "string", "description": "Name prefix or suffix", "name": "name", "in": "query"},
                    {"type": "string", "description": "Exact tag", "name": "tag", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "create a product",
                "parameters": [
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes only the lowest-id product whose name starts or ends with the given value.",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "delete a product by name",
                "parameters": [
                    {"type": "string", "description": "Name prefix or suffix", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/api/v1/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "get a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "replace a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "delete a product by id",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "controller.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "controller.ProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Ming Vase"},
                "price": {"type": "number", "example": 1200.5},
                "tag": {"type": "string", "example": "ceramics"},
                "url": {"type": "string", "example": "https://img.example.com/vase.png"}
            }
        },
        "model.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "tag": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "v1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Antique Store REST API",
	Description:      "Catalogue of antique store products with name and tag search.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
