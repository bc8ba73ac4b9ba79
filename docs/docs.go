package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "CollabTodo API Documentation",
        "title": "CollabTodo API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Registration",
                "description": "Register a new user account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "user",
                        "description": "User registration data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "user@example.com"
                                },
                                "display_name": {
                                    "type": "string",
                                    "example": "Jamie"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "password123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User created successfully"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "user@example.com"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "password123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/api/v1/workspaces": {
            "get": {
                "tags": ["Workspaces"],
                "summary": "List Workspaces",
                "description": "List the workspaces the current user belongs to",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Workspace list"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "tags": ["Workspaces"],
                "summary": "Create Workspace",
                "description": "Create a personal, couple or family workspace",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "workspace",
                        "description": "Workspace data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "name": {
                                    "type": "string",
                                    "example": "Family chores"
                                },
                                "type": {
                                    "type": "string",
                                    "enum": ["personal", "couple", "family"],
                                    "example": "family"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Workspace created"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/api/v1/workspaces/{id}/invite": {
            "post": {
                "tags": ["Workspaces"],
                "summary": "Invite Members",
                "description": "Invite registered users to a workspace by email, within the workspace member cap",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "invite",
                        "description": "Invite batch",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "emails": {
                                    "type": "array",
                                    "items": {
                                        "type": "string"
                                    },
                                    "example": ["partner@example.com"]
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Members invited"
                    },
                    "400": {
                        "description": "Invalid email or workspace full"
                    },
                    "403": {
                        "description": "Not a workspace admin"
                    }
                }
            }
        },
        "/api/v1/lists/{id}/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List Tasks",
                "description": "List the tasks of a task list with optional status, assignee and tag filters",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    },
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "enum": ["all", "active", "completed"]
                    },
                    {
                        "in": "query",
                        "name": "assignee",
                        "type": "string",
                        "enum": ["all", "me", "others", "unassigned"]
                    },
                    {
                        "in": "query",
                        "name": "tag",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task list"
                    },
                    "404": {
                        "description": "Task list not found"
                    }
                }
            }
        },
        "/api/v1/tasks/{id}/complete": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Complete Task",
                "description": "Mark a task completed and notify the other workspace members",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task completed"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        },
        "/api/v1/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List Notifications",
                "description": "Get the current user's notification feed, newest first, capped at 20",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Notification feed"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "CollabTodo API",
	Description:      "CollabTodo API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
