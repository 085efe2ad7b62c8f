package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Schedulo API",
        "description": "Weekly timetable generation for classes and faculty",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Timetables", "description": "Timetable generation, reads and exports"},
        {"name": "Operations", "description": "Liveness, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/timetables/generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate weekly timetables",
                "description": "Schedules every class from the stored inputs and replaces the stored timetables. A 422 UNSATISFIABLE response carries the diagnostics report in error.details.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid overrides", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No classes, no subjects, or no feasible timetable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List stored timetables",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/data-summary": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Summarise the stored scheduling inputs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/class/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get a class timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/faculty/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get a faculty timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/class/{id}/export": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Export a class timetable",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/faculty/{id}/export": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Export a faculty timetable",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "string", "enum": ["Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"]}},
                "periodsPerDay": {"type": "integer", "minimum": 1, "maximum": 12}
            }
        },
        "Period": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "periodIndex": {"type": "integer"},
                "subjectId": {"type": "string"},
                "subjectName": {"type": "string"},
                "subjectCode": {"type": "string"},
                "facultyId": {"type": "string"},
                "facultyName": {"type": "string"},
                "classId": {"type": "string"},
                "className": {"type": "string"},
                "roomId": {"type": "string"},
                "roomName": {"type": "string"},
                "isLab": {"type": "boolean"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "Timetable": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["class", "faculty"]},
                "referenceId": {"type": "string"},
                "referenceName": {"type": "string"},
                "periods": {"type": "array", "items": {"$ref": "#/definitions/Period"}}
            }
        },
        "ProblemTask": {
            "type": "object",
            "properties": {
                "taskId": {"type": "string"},
                "classId": {"type": "string"},
                "className": {"type": "string"},
                "subjectId": {"type": "string"},
                "subjectName": {"type": "string"},
                "facultyId": {"type": "string"},
                "facultyName": {"type": "string"},
                "length": {"type": "integer"},
                "isLab": {"type": "boolean"},
                "reason": {"type": "string"}
            }
        },
        "FacultyLoad": {
            "type": "object",
            "properties": {
                "facultyId": {"type": "string"},
                "name": {"type": "string"},
                "requiredSlots": {"type": "integer"},
                "availableSlots": {"type": "integer"},
                "gridSlots": {"type": "integer"},
                "weeklyLoadLimit": {"type": "integer"},
                "maxPeriodsPerDay": {"type": "integer"},
                "availability": {"type": "object"},
                "overloaded": {"type": "boolean"}
            }
        },
        "Diagnostics": {
            "type": "object",
            "properties": {
                "totalTasks": {"type": "integer"},
                "labTasks": {"type": "integer"},
                "attempts": {"type": "integer"},
                "maxAttempts": {"type": "integer"},
                "budgetExhausted": {"type": "boolean"},
                "elapsedTime": {"type": "integer"},
                "problematicTasks": {"type": "array", "items": {"$ref": "#/definitions/ProblemTask"}},
                "facultyStatus": {"type": "array", "items": {"$ref": "#/definitions/FacultyLoad"}},
                "suggestion": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"$ref": "#/definitions/Diagnostics"}
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
