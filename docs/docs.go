// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/tracker": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Current tracker view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}}
                }
            }
        },
        "/tracker/reload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Reload habits and history from storage",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}}
                }
            }
        },
        "/tracker/date": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Move the viewed day",
                "parameters": [
                    {"description": "Day offset", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.changeDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/tracker/achievements": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Save the free-text achievements of the viewed day",
                "parameters": [
                    {"description": "Achievements", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.achievementsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/tracker/streaks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Exercise and learning streaks as of today",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Streaks"}}
                }
            }
        },
        "/tracker/warnings": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Dismiss every warning",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}}
                }
            }
        },
        "/tracker/warnings/{index}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Dismiss one warning",
                "parameters": [
                    {"type": "integer", "description": "Warning index", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Append a new habit with default values",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.habitResponse"}}
                }
            }
        },
        "/habits/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Edit a habit's name, category or icon",
                "parameters": [
                    {"type": "integer", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateHabitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.habitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Remove a habit definition",
                "parameters": [
                    {"type": "integer", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits/{id}/details": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Set the notes of a habit for the viewed day",
                "parameters": [
                    {"type": "integer", "description": "Habit ID", "name": "id", "in": "path", "required": true},
                    {"description": "Notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.detailsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/habits/{id}/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Flip a habit's completion for the viewed day",
                "parameters": [
                    {"type": "integer", "description": "Habit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TrackerView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Defaults to the last seven days. Dates are YYYY-MM-DD.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Completion statistics for a date range",
                "parameters": [
                    {"type": "string", "description": "First day", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "Last day", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeeklyStats"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["Physical", "Learning", "Other"]},
                "completed": {"type": "boolean"},
                "details": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "domain.Streaks": {
            "type": "object",
            "properties": {
                "exercise": {"type": "integer"},
                "learning": {"type": "integer"}
            }
        },
        "domain.Warning": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "at": {"type": "string"}
            }
        },
        "domain.HabitStat": {
            "type": "object",
            "properties": {
                "habit_id": {"type": "integer"},
                "habit_name": {"type": "string"},
                "category": {"type": "string"},
                "icon": {"type": "string"},
                "completion_rate": {"type": "number"},
                "days_completed": {"type": "integer"},
                "notes_written": {"type": "integer"},
                "daily_progress": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "domain.CategoryStat": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "habits": {"type": "integer"},
                "active_days": {"type": "integer"},
                "days_in_period": {"type": "integer"},
                "activity_rate": {"type": "number"}
            }
        },
        "domain.WeeklyStats": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "total_habits": {"type": "integer"},
                "overall_completion_rate": {"type": "number"},
                "habits": {"type": "array", "items": {"$ref": "#/definitions/domain.HabitStat"}},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryStat"}},
                "streaks": {"$ref": "#/definitions/domain.Streaks"}
            }
        },
        "services.TrackerView": {
            "type": "object",
            "properties": {
                "view_date": {"type": "string"},
                "label": {"type": "string"},
                "is_today": {"type": "boolean"},
                "habits": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}},
                "achievements": {"type": "string"},
                "completion": {"type": "integer"},
                "streaks": {"$ref": "#/definitions/domain.Streaks"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/domain.Warning"}}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "http.registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "http.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "http.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "http.tokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/http.userResponse"}
            }
        },
        "http.changeDateRequest": {
            "type": "object",
            "required": ["days"],
            "properties": {"days": {"type": "integer"}}
        },
        "http.achievementsRequest": {
            "type": "object",
            "properties": {"achievements": {"type": "string"}}
        },
        "http.detailsRequest": {
            "type": "object",
            "properties": {"details": {"type": "string"}}
        },
        "http.updateHabitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["Physical", "Learning", "Other"]},
                "icon": {"type": "string"}
            }
        },
        "http.habitResponse": {
            "type": "object",
            "properties": {
                "habit": {"$ref": "#/definitions/domain.Habit"},
                "tracker": {"$ref": "#/definitions/services.TrackerView"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Habit Tracker API",
	Description:      "Daily habit checklist with exercise and learning streaks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
