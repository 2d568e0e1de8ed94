// Package docs registers the API document served at /swagger/doc.json.
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
        "/health": {"get": {"tags": ["System"], "summary": "Liveness", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["System"], "summary": "Readiness", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/system/install": {"post": {"tags": ["System"], "summary": "Install Database Schema", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}},
        "/api/v1/teams/{id}": {
            "get": {
                "tags": ["Teams"], "summary": "Team Overview", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Team ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TeamOverview"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/api/v1/teams/{id}/optimize": {
            "post": {
                "description": "Scores free agents against the team's gaps to a threshold model and assigns the best affordable set to open slots.",
                "consumes": ["application/json"], "produces": ["application/json"],
                "tags": ["Optimizer"], "summary": "Optimize Roster",
                "parameters": [
                    {"type": "integer", "description": "Team ID", "name": "id", "in": "path", "required": true},
                    {"description": "Optimization request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OptimizationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OptimizationResult"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Team or model not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Roster changed while applying", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "No feasible assignment", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/teams/{id}/scores/top": {
            "get": {
                "tags": ["Optimizer"], "summary": "Top Standard Gain", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Team ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "hitter or pitcher", "name": "kind", "in": "query", "required": true},
                    {"type": "integer", "description": "Max rows", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ScoredPlayer"}}}}
            }
        },
        "/api/v1/teams/{id}/runs": {
            "get": {
                "tags": ["Optimizer"], "summary": "Optimization History", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Team ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "optimal, suboptimal, infeasible or timed_out", "name": "status", "in": "query"},
                    {"type": "string", "description": "hitting, pitching or both", "name": "scope", "in": "query"},
                    {"type": "string", "description": "RFC3339 lower bound", "name": "since", "in": "query"},
                    {"type": "string", "description": "RFC3339 upper bound", "name": "until", "in": "query"},
                    {"type": "integer", "description": "Max rows", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.OptimizationRun"}}}}
            }
        },
        "/api/v1/teams/{id}/runs/stats": {
            "get": {
                "description": "Groups runs by status, scope, model or day with counts and averages.",
                "tags": ["Optimizer"], "summary": "Optimization History Summary", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Team ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "status (default), scope, model or day", "name": "by", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RunStat"}}}}
            }
        },
        "/api/v1/players/free-agents": {
            "get": {
                "tags": ["Players"], "summary": "Free Agents", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "hitter or pitcher", "name": "kind", "in": "query"},
                    {"type": "string", "description": "Slot label", "name": "slot", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Player"}}}}
            }
        },
        "/api/v1/thresholds": {
            "get": {"tags": ["Thresholds"], "summary": "List Threshold Models", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ThresholdSummary"}}}}},
            "post": {
                "tags": ["Thresholds"], "summary": "Create Threshold Model", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"description": "Model", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateThresholdRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ThresholdModel"}}}
            }
        },
        "/api/v1/thresholds/upload": {
            "post": {
                "tags": ["Thresholds"], "summary": "Upload League History", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "description": "League history CSV", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Model name", "name": "name", "in": "formData"},
                    {"type": "string", "description": "Model description", "name": "description", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.UploadSummary"}}}
            }
        },
        "/api/v1/thresholds/{id}": {
            "get": {
                "tags": ["Thresholds"], "summary": "Get Threshold Model", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Model ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThresholdModel"}}}
            },
            "delete": {
                "tags": ["Thresholds"], "summary": "Delete Threshold Model",
                "parameters": [{"type": "integer", "description": "Model ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/thresholds/{id}/what-if": {
            "post": {
                "tags": ["Thresholds"], "summary": "What-If", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Model ID", "name": "id", "in": "path", "required": true},
                    {"description": "Adjustments", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.WhatIfRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.WhatIfResult"}}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "kind": {"type": "string"}, "unfilled_slots": {"type": "array", "items": {"type": "string"}}}},
        "models.OptimizationRequest": {"type": "object", "properties": {"model_id": {"type": "integer"}, "budget": {"type": "number"}, "scope": {"type": "string", "enum": ["hitting", "pitching", "both"]}, "bench_quota": {"type": "integer"}, "apply": {"type": "boolean"}}},
        "models.OptimizationResult": {"type": "object"},
        "models.OptimizationRun": {"type": "object"},
        "models.RunStat": {"type": "object", "properties": {"label": {"type": "string"}, "runs": {"type": "integer"}, "avg_duration_ms": {"type": "number"}, "avg_standard_gain": {"type": "number"}, "avg_cost": {"type": "number"}}},
        "models.ScoredPlayer": {"type": "object"},
        "models.Player": {"type": "object"},
        "models.TeamOverview": {"type": "object"},
        "models.ThresholdSummary": {"type": "object"},
        "models.ThresholdModel": {"type": "object"},
        "models.CreateThresholdRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "targets": {"type": "object", "additionalProperties": {"type": "number"}}}},
        "models.UploadSummary": {"type": "object"},
        "models.WhatIfRequest": {"type": "object", "properties": {"adjustments": {"type": "object", "additionalProperties": {"type": "number"}}}},
        "models.WhatIfResult": {"type": "object"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fantasy Roster Optimizer API",
	Description:      "Standard-gain scoring and budget-constrained roster assignment for salary-cap fantasy baseball.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
