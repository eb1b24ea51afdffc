package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/view": {
            "get": {
                "tags": ["view"],
                "summary": "Current view state",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "View snapshot with formatted clock", "schema": {"$ref": "#/definitions/View"}}
                }
            }
        },
        "/search": {
            "put": {
                "tags": ["view"],
                "summary": "Replace the search query",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"query": {"type": "string", "example": "утр"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "View snapshot", "schema": {"$ref": "#/definitions/View"}}
                }
            }
        },
        "/screen": {
            "put": {
                "tags": ["view"],
                "summary": "Switch between the alarm list and notifications",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"notifications": {"type": "boolean"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "View snapshot", "schema": {"$ref": "#/definitions/View"}}
                }
            }
        },
        "/alarms": {
            "get": {
                "tags": ["alarms"],
                "summary": "Filter alarms by an ad-hoc query",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "q", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {"description": "Filtered alarms"}
                }
            }
        },
        "/alarms/{id}/toggle": {
            "post": {
                "tags": ["alarms"],
                "summary": "Flip the enabled flag of an alarm",
                "description": "Unknown ids are ignored",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "View snapshot", "schema": {"$ref": "#/definitions/View"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "Notification history",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Notifications"}
                }
            }
        },
        "/form": {
            "get": {
                "tags": ["form"],
                "summary": "Dialog state and draft",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Form state", "schema": {"$ref": "#/definitions/FormState"}}
                }
            },
            "patch": {
                "tags": ["form"],
                "summary": "Overwrite draft fields",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "time": {"type": "string", "example": "06:45"},
                                "label": {"type": "string", "example": "Пробежка"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Form state", "schema": {"$ref": "#/definitions/FormState"}},
                    "409": {"description": "Dialog is closed"}
                }
            }
        },
        "/form/open": {
            "post": {
                "tags": ["form"],
                "summary": "Open the dialog with a default draft",
                "responses": {"200": {"description": "Form state", "schema": {"$ref": "#/definitions/FormState"}}}
            }
        },
        "/form/close": {
            "post": {
                "tags": ["form"],
                "summary": "Close the dialog and discard the draft",
                "responses": {"200": {"description": "Form state", "schema": {"$ref": "#/definitions/FormState"}}}
            }
        },
        "/form/days/{day}/toggle": {
            "post": {
                "tags": ["form"],
                "summary": "Toggle one repeat weekday in the draft",
                "parameters": [
                    {"in": "path", "name": "day", "type": "string", "required": true, "enum": ["Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"]}
                ],
                "responses": {
                    "200": {"description": "Form state", "schema": {"$ref": "#/definitions/FormState"}},
                    "400": {"description": "Unknown weekday"},
                    "409": {"description": "Dialog is closed"}
                }
            }
        },
        "/form/save": {
            "post": {
                "tags": ["form"],
                "summary": "Commit the draft as a new alarm",
                "responses": {
                    "201": {"description": "Created alarm", "schema": {"$ref": "#/definitions/Alarm"}},
                    "400": {"description": "Invalid draft"},
                    "409": {"description": "Dialog is closed"}
                }
            }
        }
    },
    "definitions": {
        "Alarm": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "time": {"type": "string", "example": "07:00"},
                "label": {"type": "string"},
                "enabled": {"type": "boolean"},
                "repeat": {"type": "array", "items": {"type": "string"}},
                "sound": {"type": "string"}
            }
        },
        "Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "time": {"type": "string"},
                "text": {"type": "string"},
                "icon": {"type": "string", "enum": ["Bell", "BellOff"]}
            }
        },
        "View": {
            "type": "object",
            "properties": {
                "current_time": {"type": "string", "format": "date-time"},
                "clock": {"type": "string", "example": "07:00"},
                "date": {"type": "string"},
                "screen": {"type": "string", "enum": ["list", "notifications"]},
                "search_query": {"type": "string"},
                "alarms": {"type": "array", "items": {"$ref": "#/definitions/Alarm"}},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}},
                "notification_count": {"type": "integer"},
                "empty": {"type": "boolean"}
            }
        },
        "FormState": {
            "type": "object",
            "properties": {
                "open": {"type": "boolean"},
                "draft": {
                    "type": "object",
                    "properties": {
                        "time": {"type": "string", "example": "09:00"},
                        "label": {"type": "string"},
                        "repeat": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Будильник API",
	Description:      "Alarm clock view state API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
