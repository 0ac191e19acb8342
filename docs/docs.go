// Package docs holds the OpenAPI document served under /swagger. It follows the
// swag annotations in internal/router; regenerate it with go generate ./cmd/reg_api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/detail/{id}": {
            "get": {
                "description": "Returns the stored document with its full text.",
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get a document",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Document ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Detail"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/fetch": {
            "post": {
                "description": "Analyzes text or a fetched URL and stores it. Re-submitting the same URL (or text prefix) updates the stored document.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Submit a document",
                "parameters": [
                    {"description": "Text or URL to analyze", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/fetch-preview": {
            "post": {
                "description": "Returns the summary and derived metadata without storing anything.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Preview a document analysis",
                "parameters": [
                    {"description": "Text or URL to analyze", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pipeline.Preview"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/list": {
            "get": {
                "description": "Returns stored documents newest first with a short text snippet.",
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List documents",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pagination.OffsetResult-dto_ListItem"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/visualization-data": {
            "get": {
                "description": "Cross-document counts, matrices, word frequencies, timeline and network graph.",
                "produces": ["application/json"],
                "tags": ["visualization"],
                "summary": "Aggregated visualization data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/aggregate.Visualization"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "aggregate.Edge": {
            "type": "object",
            "properties": {"reg": {"type": "string"}, "tag": {"type": "string"}}
        },
        "aggregate.Node": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "label": {"type": "string"}, "type": {"type": "string"}}
        },
        "aggregate.SeverityPoint": {
            "type": "object",
            "properties": {"probability": {"type": "number"}, "severity": {"type": "number"}, "source": {"type": "string"}}
        },
        "aggregate.TimelinePoint": {
            "type": "object",
            "properties": {"index": {"type": "integer"}, "severity": {"type": "number"}}
        },
        "aggregate.Visualization": {
            "type": "object",
            "properties": {
                "network_edges": {"type": "array", "items": {"$ref": "#/definitions/aggregate.Edge"}},
                "network_nodes": {"type": "array", "items": {"$ref": "#/definitions/aggregate.Node"}},
                "severity_points": {"type": "array", "items": {"$ref": "#/definitions/aggregate.SeverityPoint"}},
                "source_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "tags_by_source": {"type": "object", "additionalProperties": {"type": "object", "additionalProperties": {"type": "integer"}}},
                "timeline": {"type": "array", "items": {"$ref": "#/definitions/aggregate.TimelinePoint"}},
                "word_freq": {"type": "array", "items": {"type": "array", "items": {}}}
            }
        },
        "domain.Entity": {
            "type": "object",
            "properties": {"label": {"type": "string"}, "word": {"type": "string"}}
        },
        "dto.Detail": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "entities": {"type": "array", "items": {"$ref": "#/definitions/domain.Entity"}},
                "id": {"type": "string", "format": "uuid"},
                "language": {"type": "string"},
                "probability": {"type": "number"},
                "severity": {"type": "number"},
                "source": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "text": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "dto.ListItem": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string", "format": "uuid"},
                "probability": {"type": "number"},
                "severity": {"type": "number"},
                "snippet": {"type": "string"},
                "source": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.SubmitRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "The broadcaster is liable for copyright royalty payments."},
                "title": {"type": "string", "example": "Copyright Act"},
                "url": {"type": "string", "format": "uri", "example": "https://laws-lois.justice.gc.ca/eng/acts/C-42/"}
            }
        },
        "dto.SubmitResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "boolean"},
                "id": {"type": "string", "format": "uuid"},
                "language": {"type": "string"},
                "probability": {"type": "number"},
                "severity": {"type": "number"},
                "source": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "url": {"type": "string"}
            }
        },
        "pagination.OffsetResult-dto_ListItem": {
            "type": "object",
            "properties": {
                "has_more": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.ListItem"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "pipeline.Preview": {
            "type": "object",
            "properties": {
                "entities": {"type": "array", "items": {"$ref": "#/definitions/domain.Entity"}},
                "probability": {"type": "number"},
                "severity": {"type": "number"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "text": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Reg Hunter API",
	Description:      "Summarizes regulatory documents and scores them by topic, severity and probability",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
