package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Engagement Compliance Dashboard API",
        "description": "Reviewer dashboard for searching physician messages and running compliance checks.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "Filters, search and classification for the reviewer session"},
        {"name": "Export", "description": "Downloads of the current results"}
    ],
    "paths": {
        "/view": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Current dashboard view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/options": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Filter option sets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/filters": {
            "put": {
                "tags": ["Dashboard"],
                "summary": "Replace the session filters",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/search": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Run a message search with the session filters",
                "description": "An optional body replaces the filters before searching.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/FilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Message service unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classify/{id}": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Run a compliance check on one message",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid message id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Message service unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clear": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Reset filters, results and classification",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/messages.csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the current result set as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "No results to export", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/classification.pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the displayed classification as a PDF report",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "No classification to export", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "FilterRequest": {
            "type": "object",
            "properties": {
                "physician_id": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "topic": {"type": "string", "enum": ["dosing", "safety", "samples", "trial", "scheduling", "reimbursement", "medical_info"]},
                "sentiment": {"type": "string", "enum": ["positive", "neutral", "negative"]},
                "message_text": {"type": "string"},
                "specialty": {"type": "string", "enum": ["Cardiology", "Oncology", "Neurology", "Pulmonology", "Gastroenterology", "Dermatology", "Endocrinology"]},
                "state": {"type": "string", "enum": ["MA", "NJ", "CT", "FL", "NY", "GA", "CA", "PA"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
