// Package docs registra la documentación OpenAPI del stand-in (/swagger/*).
// Formato de salida de swag init; regenerar con:
//
//	swag init -g cmd/api/main.go -o internal/docs
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
        "/pets": {
            "get": {
                "description": "Devuelve la colección completa, en orden de alta. No hay paginación del lado servidor.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.Record"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea un registro. El servidor asigna el id y recalcula la clasificación a partir de la edad.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"description": "Registro sin id", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.Record"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.Record"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "description": "Sujeto a rate limit: responde 429 cuando se agota el token bucket.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtener mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Record"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}},
                    "429": {"description": "too many requests", "schema": {"type": "string"}}
                }
            },
            "put": {
                "description": "Reemplaza todos los campos mutables y recalcula la clasificación.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Registro completo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.Record"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Record"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Eliminar mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "pets.Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["Perro", "Gato"]},
                "gender": {"type": "string", "enum": ["Macho", "Hembra"]},
                "age": {"type": "number"},
                "photo": {"type": "string"},
                "description": {"type": "string"},
                "classification": {"type": "string", "enum": ["Cachorro", "Adulto", "Senior"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Store (stand-in)",
	Description:      "Colección REST de mascotas en adopción usada para desarrollo local del catálogo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
