// Package docs holds the OpenAPI description served at /swagger.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "API information",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}}
            }
        },
        "/agent": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["text/plain"],
                "tags": ["agent"],
                "summary": "Ask the agent",
                "description": "Routes the message to one tool: transcribe an attached file, save a record or query the history.",
                "parameters": [
                    {"type": "string", "description": "User message", "name": "message", "in": "formData", "required": true},
                    {"type": "file", "description": "Audio file", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Agent reply", "schema": {"type": "string"}},
                    "422": {"description": "Missing message", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["transcriptions"],
                "summary": "Upload and transcribe an audio file",
                "parameters": [
                    {"type": "file", "description": "Audio file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "default": "es", "description": "Language code", "name": "language", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Missing file or unsupported format", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Provider, storage or configuration failure", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Query the transcription history",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive text filter", "name": "search", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 10, "description": "Maximum number of results", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Matching records, newest first", "schema": {"$ref": "#/definitions/dto.HistoryResponse"}},
                    "422": {"description": "Limit out of range", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/download": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["history"],
                "summary": "Download the history",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "description": "Export format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "History is empty", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "History statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsResponse"}}}
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "detail": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "api_key_configured": {"type": "boolean"}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "filename": {"type": "string"},
                "transcription": {"type": "string"},
                "duration": {"type": "number"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.HistoryItem": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "filename": {"type": "string"},
                "duration_seconds": {"type": "number"},
                "model": {"type": "string"},
                "transcription_text": {"type": "string"}
            }
        },
        "dto.HistoryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "total_count": {"type": "integer"},
                "transcriptions": {"type": "array", "items": {"$ref": "#/definitions/dto.HistoryItem"}}
            }
        },
        "dto.StatsResponse": {
            "type": "object",
            "properties": {
                "total_transcriptions": {"type": "integer"},
                "total_duration_seconds": {"type": "number"},
                "average_duration_seconds": {"type": "number"},
                "most_used_model": {"type": "string"},
                "recent_files": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Audio Transcription API",
	Description:      "Transcribe audio with Deepgram, keep a CSV history and query it through a tool-calling agent.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
