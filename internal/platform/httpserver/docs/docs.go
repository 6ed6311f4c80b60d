// Package docs registers the evote API description with swag so the
// /swagger/ route can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/events": {
            "post": {
                "summary": "Create an event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/events/login": {
            "post": {
                "summary": "Log in with a provisioned voter account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/events/{event_id}": {
            "get": {
                "summary": "Get an event without its password",
                "parameters": [{"in": "path", "name": "event_id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "summary": "Delete an event with its candidates, accounts and votes",
                "parameters": [{"in": "path", "name": "event_id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/events/{event_id}/candidates": {
            "get": {
                "summary": "List candidates with vote counts",
                "parameters": [{"in": "path", "name": "event_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Add a candidate",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CandidateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/events/{event_id}/candidates/{candidate_id}": {
            "put": {
                "summary": "Update a candidate name or photo",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "path", "name": "candidate_id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CandidateRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "summary": "Delete a candidate and its votes",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "path", "name": "candidate_id", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/events/{event_id}/ballot": {
            "get": {
                "summary": "Get the ballot for holders of the event password",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "query", "name": "password", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown event or wrong password"}}
            }
        },
        "/api/events/{event_id}/accounts": {
            "get": {
                "summary": "List voter accounts with plaintext passwords",
                "parameters": [{"in": "path", "name": "event_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Provision voter accounts",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountsRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/events/{event_id}/vote": {
            "post": {
                "summary": "Cast a vote",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CastVoteRequest"}}
                ],
                "responses": {"201": {"description": "Accepted"}, "409": {"description": "Already voted"}}
            }
        },
        "/api/events/{event_id}/vote-status/{user_id}": {
            "get": {
                "summary": "Report whether an account has voted",
                "parameters": [
                    {"in": "path", "name": "event_id", "type": "string", "required": true},
                    {"in": "path", "name": "user_id", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events/{event_id}/results": {
            "get": {
                "summary": "Vote totals by candidate name",
                "parameters": [{"in": "path", "name": "event_id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "CreateEventRequest": {"type": "object", "properties": {"event_name": {"type": "string"}}},
        "EventResponse": {"type": "object", "properties": {"event_id": {"type": "string"}, "event_name": {"type": "string"}, "password": {"type": "string"}, "created_at": {"type": "string"}}},
        "CandidateRequest": {"type": "object", "properties": {"name": {"type": "string"}, "photo_base64": {"type": "string"}}},
        "CreateAccountsRequest": {"type": "object", "properties": {"event_size": {"type": "integer"}}},
        "LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "LoginResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "event_id": {"type": "string"}, "event_name": {"type": "string"}, "event_password": {"type": "string"}}},
        "CastVoteRequest": {"type": "object", "properties": {"user_id": {"type": "string"}, "candidate_id": {"type": "string"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "evote API",
	Description:      "Events, candidates, voter accounts and one-vote-per-account ballots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
