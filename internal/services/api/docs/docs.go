// Package docs registers the OpenAPI document of the tglang API with swag.
// Regenerate with: swag init --v3.1 -g internal/services/api/api.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/detect": {
            "post": {
                "tags": ["Detect"],
                "summary": "Detect the programming language of a snippet",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.DetectInput"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.Detection"}}}},
                    "413": {"description": "too large", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/detect/batch": {
            "post": {
                "tags": ["Detect"],
                "summary": "Detect many snippets; results keep input order",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.BatchInput"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.BatchResult"}}}}
                }
            }
        },
        "/detect/languages": {
            "get": {
                "tags": ["Detect"],
                "summary": "List the language enumeration",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/detect.LanguagesResult"}}}}
                }
            }
        },
        "/stats/languages": {
            "get": {
                "tags": ["Stats"],
                "summary": "Detections per language over the last N days",
                "parameters": [{"name": "days", "in": "query", "schema": {"type": "integer", "default": 7, "minimum": 1, "maximum": 90}}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/stats.LanguagesResult"}}}},
                    "503": {"description": "journal disabled", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/feedback": {
            "get": {
                "tags": ["Feedback"],
                "summary": "Most recent corrections",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20}}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/feedback.ListResult"}}}}
                }
            },
            "post": {
                "tags": ["Feedback"],
                "summary": "Store a correction of a detected language",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/feedback.CreateInput"}}}},
                "responses": {
                    "201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/feedback.Feedback"}}}},
                    "503": {"description": "feedback store disabled", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/feedback/{id}": {
            "get": {
                "tags": ["Feedback"],
                "summary": "One correction by id",
                "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/feedback.Feedback"}}}},
                    "404": {"description": "not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}, "503": {"description": "a backend failed its ping"}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info, uptime and mounted modules", "responses": {"200": {"description": "ok"}}}},
        "/meta/model": {"get": {"tags": ["Meta"], "summary": "Loaded model and symbol set", "responses": {"200": {"description": "ok"}}}}
    },
    "components": {
        "schemas": {
            "detect.DetectInput": {
                "type": "object",
                "required": ["text"],
                "properties": {"text": {"type": "string", "example": "package main\n\nfunc main() {}"}}
            },
            "detect.BatchInput": {
                "type": "object",
                "required": ["texts"],
                "properties": {"texts": {"type": "array", "minItems": 1, "maxItems": 256, "items": {"type": "string"}}}
            },
            "detect.Detection": {
                "type": "object",
                "properties": {
                    "language": {"type": "string", "example": "GO"},
                    "code": {"type": "integer", "example": 39},
                    "display_name": {"type": "string", "example": "Go"},
                    "probability": {"type": "number", "example": 0.97},
                    "outcome": {"type": "string", "example": "accepted"},
                    "script": {"type": "string", "example": "Latin"}
                }
            },
            "detect.BatchResult": {
                "type": "object",
                "properties": {"items": {"type": "array", "items": {"$ref": "#/components/schemas/detect.Detection"}}}
            },
            "detect.LanguagesResult": {
                "type": "object",
                "properties": {
                    "set_version": {"type": "integer", "example": 1},
                    "languages": {"type": "array", "items": {"type": "object", "properties": {
                        "code": {"type": "integer"}, "name": {"type": "string"}, "display_name": {"type": "string"}
                    }}}
                }
            },
            "stats.LanguagesResult": {
                "type": "object",
                "properties": {
                    "since": {"type": "string", "format": "date-time"},
                    "until": {"type": "string", "format": "date-time"},
                    "days": {"type": "integer"},
                    "total": {"type": "integer"},
                    "languages": {"type": "array", "items": {"type": "object", "properties": {
                        "language": {"type": "string"}, "code": {"type": "integer"}, "display_name": {"type": "string"},
                        "count": {"type": "integer"}, "share": {"type": "number"}
                    }}}
                }
            },
            "feedback.CreateInput": {
                "type": "object",
                "required": ["text", "expected"],
                "properties": {
                    "text": {"type": "string"},
                    "detected": {"type": "string", "example": "C"},
                    "expected": {"type": "string", "example": "RUST"},
                    "note": {"type": "string", "maxLength": 500}
                }
            },
            "feedback.Feedback": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "created_at": {"type": "string", "format": "date-time"},
                    "text": {"type": "string"},
                    "detected": {"type": "string"},
                    "expected": {"type": "string"},
                    "note": {"type": "string"}
                }
            },
            "feedback.ListResult": {
                "type": "object",
                "properties": {"items": {"type": "array", "items": {"$ref": "#/components/schemas/feedback.Feedback"}}}
            }
        }
    }
}`

// SwaggerInfoapi holds exported Swagger Info so clients can modify it
var SwaggerInfoapi = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "tglang API",
	Description:      "Programming language detection for code snippets.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoapi.InstanceName(), SwaggerInfoapi)
}
