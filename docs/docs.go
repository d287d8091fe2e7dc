// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/countdown": {
            "get": {
                "produces": ["application/json"],
                "tags": ["countdown"],
                "summary": "Current countdown",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CountdownResponse"}}}
            }
        },
        "/api/v1/subscribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subscription"],
                "summary": "Subscribe to the launch notification",
                "parameters": [{"description": "email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubscribeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SubscriptionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/service.SubscriptionResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/service.SubscriptionResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/service.SubscriptionResult"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "token"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an admin",
                "parameters": [{"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/admin/countdown/target": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change the launch target",
                "parameters": [{"description": "new target", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetTargetRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CountdownResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/admin/subscribers/count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Subscriber count",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/admin/subscribers/check": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Check whether an email is subscribed",
                "parameters": [{"type": "string", "description": "email address", "name": "email", "in": "query", "required": true}],
                "responses": {"200": {"description": "email, subscribed"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/admin/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Launch event history",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["SUBSCRIBED", "TARGET_CHANGED", "LAUNCHED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LogsResponse"}}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "countdown.Snapshot": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "hours": {"type": "integer"},
                "minutes": {"type": "integer"},
                "seconds": {"type": "integer"},
                "state": {"type": "string", "enum": ["BEFORE", "LIVE", "POST"]},
                "isOver": {"type": "boolean"}
            }
        },
        "handlers.CountdownResponse": {
            "type": "object",
            "properties": {
                "snapshot": {"$ref": "#/definitions/countdown.Snapshot"},
                "target": {"type": "string", "example": "2027-01-01T00:00:00+07:00"}
            }
        },
        "handlers.SetTargetRequest": {
            "type": "object",
            "properties": {"target": {"type": "string", "example": "2027-01-01T00:00:00Z"}}
        },
        "handlers.SubscribeRequest": {
            "type": "object",
            "properties": {"email": {"type": "string", "example": "founder@example.com"}}
        },
        "handlers.LogsResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "events": {"type": "array", "items": {"type": "object"}}}
        },
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "service.SubscriptionResult": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "success": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Launchpad API",
	Description:      "Countdown and launch subscription service for a coming-soon page.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
