// Package docs registers the swagger document of the API.
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
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"description": "Account information", "name": "Info", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/model.UserResponse"}},
                    "400": {"description": "Invalid input or email already exists", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "500": {"description": "Database or password hashing error", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [
                    {"description": "Credentials", "name": "Info", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/utilities.MessageResponse"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "List own jobs",
                "parameters": [
                    {"type": "string", "description": "Substring of company or position", "name": "search", "in": "query"},
                    {"type": "string", "description": "all, pending, interview or declined", "name": "jobStatus", "in": "query"},
                    {"type": "string", "description": "all or one of the configured job types", "name": "jobType", "in": "query"},
                    {"type": "string", "description": "newest (default), oldest, a-z or z-a", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number, starts at 1", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "One page of jobs", "schema": {"$ref": "#/definitions/model.JobListResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Create a job",
                "parameters": [
                    {"description": "Job information", "name": "Job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.EditableJobInfo"}}
                ],
                "responses": {
                    "201": {"description": "Created job", "schema": {"$ref": "#/definitions/model.JobResponse"}},
                    "400": {"description": "Invalid job or demo account", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        },
        "/jobs/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Job statistics",
                "responses": {
                    "200": {"description": "Statistics", "schema": {"$ref": "#/definitions/model.StatsResponse"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Get a job by id",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "The job", "schema": {"$ref": "#/definitions/model.JobResponse"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "404": {"description": "No job with this id", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true},
                    {"description": "Job information", "name": "Job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.EditableJobInfo"}}
                ],
                "responses": {
                    "200": {"description": "Updated job", "schema": {"$ref": "#/definitions/model.JobMessageResponse"}},
                    "400": {"description": "Invalid job, malformed id or demo account", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "404": {"description": "No job with this id", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Delete a job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Deleted job", "schema": {"$ref": "#/definitions/model.JobMessageResponse"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}},
                    "404": {"description": "No job with this id", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        },
        "/users/current-user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "The caller", "schema": {"$ref": "#/definitions/model.UserResponse"}}
                }
            }
        },
        "/users/admin/app-stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Application statistics",
                "responses": {
                    "200": {"description": "Totals", "schema": {"$ref": "#/definitions/model.AppStatsResponse"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        },
        "/users/update-user": {
            "patch": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update own profile",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "lastName", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "location", "in": "formData", "required": true},
                    {"type": "file", "description": "Avatar image", "name": "avatar", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Updated profile", "schema": {"$ref": "#/definitions/user.UpdateUserResponse"}},
                    "400": {"description": "Invalid input, email already exists or demo account", "schema": {"$ref": "#/definitions/utilities.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.RegisterInput": {
            "type": "object",
            "required": ["email", "lastName", "location", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "lastName": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "auth.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.EditableJobInfo": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "position": {"type": "string"},
                "jobStatus": {"type": "string", "enum": ["pending", "interview", "declined"]},
                "jobType": {"type": "string"},
                "jobLocation": {"type": "string"}
            }
        },
        "model.Job": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "company": {"type": "string"},
                "position": {"type": "string"},
                "jobStatus": {"type": "string"},
                "jobType": {"type": "string"},
                "jobLocation": {"type": "string"},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.JobResponse": {
            "type": "object",
            "properties": {"job": {"$ref": "#/definitions/model.Job"}}
        },
        "model.JobMessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "job": {"$ref": "#/definitions/model.Job"}
            }
        },
        "model.JobListResponse": {
            "type": "object",
            "properties": {
                "totalJobs": {"type": "integer"},
                "numOfPages": {"type": "integer"},
                "currentPage": {"type": "integer"},
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/model.Job"}}
            }
        },
        "model.MonthlyApplication": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "model.StatsResponse": {
            "type": "object",
            "properties": {
                "defaultStats": {"type": "object", "additionalProperties": {"type": "integer"}},
                "monthlyApplications": {"type": "array", "items": {"$ref": "#/definitions/model.MonthlyApplication"}}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "location": {"type": "string"},
                "role": {"type": "string"},
                "isDemo": {"type": "boolean"},
                "avatar": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.UserResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/model.User"}}
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "model.AppStatsResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "integer"},
                "jobs": {"type": "integer"}
            }
        },
        "user.UpdateUserResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "utilities.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "utilities.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Job Tracking API",
	Description:      "Track job applications, their status and monthly statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
