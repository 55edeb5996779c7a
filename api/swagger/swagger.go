package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CU Admissions API",
        "description": "College administration backend for CU registration workflows",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Auth", "description": "Staff authentication"},
        {"name": "Registration", "description": "CU registration submissions and review"},
        {"name": "Documents", "description": "Document catalogue and downloads"},
        {"name": "Exports", "description": "Register exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a staff user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admissions/cu-registration/batch-submit": {
            "post": {
                "tags": ["Registration"],
                "summary": "Submit registration declarations and documents",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "correctionRequestId", "in": "formData", "required": true, "type": "integer"},
                    {"name": "flags", "in": "formData", "type": "string", "description": "Correction flags JSON"},
                    {"name": "payload", "in": "formData", "type": "string", "description": "Registration payload JSON"},
                    {"name": "files", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or malformed fields"},
                    "404": {"description": "Correction request not found"},
                    "409": {"description": "Request already physically registered"}
                }
            }
        },
        "/admissions/cu-registration/application-numbers/stats": {
            "get": {
                "tags": ["Registration"],
                "summary": "Application number counter stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admissions/cu-registration/correction-requests": {
            "get": {
                "tags": ["Registration"],
                "summary": "List correction requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "declarationsComplete", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admissions/cu-registration/correction-requests/{id}": {
            "get": {
                "tags": ["Registration"],
                "summary": "Get one correction request with uploads",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admissions/cu-registration/correction-requests/{id}/physical-registration": {
            "patch": {
                "tags": ["Registration"],
                "summary": "Record on-campus physical registration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admissions/cu-registration/documents/catalogue": {
            "get": {
                "tags": ["Documents"],
                "summary": "List the registration document catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admissions/cu-registration/documents/{id}/download-url": {
            "get": {
                "tags": ["Documents"],
                "summary": "Issue a signed download URL",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admissions/cu-registration/documents/{id}/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Stream a stored document",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/admissions/cu-registration/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export correction requests as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CorrectionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "studentId": {"type": "integer"},
                "status": {"type": "string", "enum": ["PENDING", "REQUEST_CORRECTION", "APPROVED"]},
                "cuRegistrationApplicationNumber": {"type": "string"},
                "onlineRegistrationDone": {"type": "boolean"},
                "physicallyRegistered": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "DocumentUpload": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "correctionRequestId": {"type": "integer"},
                "documentId": {"type": "integer"},
                "fileName": {"type": "string"},
                "fileType": {"type": "string"},
                "fileSizeBytes": {"type": "integer"},
                "storageKey": {"type": "string"},
                "documentUrl": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "SideEffect": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["PDF_GENERATION", "NOTIFICATION", "STUDENT_SYNC"]},
                "status": {"type": "string", "enum": ["DONE", "FAILED", "SKIPPED"]},
                "detail": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "statusCode": {"type": "integer"},
                "status": {"type": "string"},
                "payload": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
