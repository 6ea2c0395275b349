// Package docs holds the OpenAPI description of the POS API served at /swagger.
package docs

import "github.com/swaggo/swag/v2"

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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/branches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["branches"],
                "summary": "List branches",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/BranchResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["branches"],
                "summary": "Create a branch",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/BranchRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/BranchResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/branches/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["branches"],
                "summary": "Get a branch",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BranchResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["branches"],
                "summary": "Update a branch",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/BranchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BranchResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["branches"],
                "summary": "Delete a branch",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Branch in use", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [{"type": "string", "name": "branch_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/UserResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/CategoryResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Create a category",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CategoryRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/CategoryResponse"}}}
            }
        },
        "/categories/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Delete a category",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ProductResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Create a product",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ProductRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ProductResponse"}}}
            }
        },
        "/products/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ProductRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Deactivate a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/products/{id}/restore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Restore a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/products/{id}/image/upload-url": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Request a presigned image upload URL",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ImageUploadRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ImageUploadResponse"}}}
            }
        },
        "/products/{id}/image": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Confirm an uploaded image",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ConfirmImageRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Remove the product image",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/pos/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pos"],
                "summary": "Sellable catalog of a branch with stock",
                "parameters": [{"type": "string", "name": "branch_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/POSView"}}}
            }
        },
        "/inventory/movements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Movement history",
                "parameters": [
                    {"type": "string", "name": "product_id", "in": "query"},
                    {"type": "string", "name": "variant_id", "in": "query"},
                    {"type": "string", "name": "branch_id", "in": "query"},
                    {"type": "string", "enum": ["IN", "OUT", "SET"], "name": "kind", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/MovementResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Adjust stock",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ApplyMovementRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ApplyMovementResponse"}},
                    "422": {"description": "Insufficient stock or no branch assigned", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/inventory/stock": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Stock of a branch",
                "parameters": [
                    {"type": "string", "name": "branch_id", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "product_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/StockCounterResponse"}}}}
            }
        },
        "/sales": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["sales"],
                "summary": "List sales",
                "parameters": [
                    {"type": "string", "name": "branch_id", "in": "query"},
                    {"type": "string", "name": "user_id", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SaleResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sales"],
                "summary": "Place an order",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/PlaceOrderRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SaleResponse"}},
                    "422": {"description": "Insufficient stock or no branch assigned", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/sales/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["sales"],
                "summary": "Get a sale with its items",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SaleResponse"}}}
            }
        },
        "/system/info": {
            "get": {"tags": ["system"], "summary": "Get system information", "responses": {"200": {"description": "OK"}}}
        },
        "/system/ping": {
            "get": {"tags": ["system"], "summary": "Ping the API", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "ImageUploadRequest": {
            "type": "object",
            "required": ["content_type"],
            "properties": {
                "content_type": {"type": "string", "enum": ["image/jpeg", "image/png", "image/webp"]}
            }
        },
        "ImageUploadResponse": {
            "type": "object",
            "properties": {
                "upload_url": {"type": "string"},
                "object_key": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "ConfirmImageRequest": {
            "type": "object",
            "required": ["object_key"],
            "properties": {
                "object_key": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "example": "ERR_INSUFFICIENT_STOCK"},
                        "message": {"type": "string"},
                        "request_id": {"type": "string"}
                    }
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"},
                "token_type": {"type": "string", "example": "Bearer"},
                "user": {"$ref": "#/definitions/UserResponse"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["name", "email", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "SUPERVISOR", "SELLER"]},
                "branch_id": {"type": "string", "format": "uuid"}
            }
        },
        "UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "branch_id": {"type": "string", "format": "uuid"}
            }
        },
        "BranchRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "address": {"type": "string"}}
        },
        "BranchResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "color": {"type": "string"}}
        },
        "CategoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "ProductRequest": {
            "type": "object",
            "required": ["name", "category_id"],
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "string", "example": "25.50"},
                "cost": {"type": "string"},
                "barcode": {"type": "string"},
                "category_id": {"type": "string", "format": "uuid"},
                "color": {"type": "string"},
                "image": {"type": "string"},
                "min_stock": {"type": "integer"},
                "initial_stock": {"type": "integer"},
                "variants": {"type": "array", "items": {"$ref": "#/definitions/VariantRequest"}}
            }
        },
        "VariantRequest": {
            "type": "object",
            "required": ["name", "value"],
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "value": {"type": "string"},
                "price_adjustment": {"type": "string"}
            }
        },
        "ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "category_id": {"type": "string", "format": "uuid"},
                "active": {"type": "boolean"},
                "variants": {"type": "array", "items": {"$ref": "#/definitions/VariantRequest"}}
            }
        },
        "POSView": {
            "type": "object",
            "properties": {
                "branch_id": {"type": "string", "format": "uuid"},
                "generated_at": {"type": "string", "format": "date-time"},
                "products": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string", "format": "uuid"},
                            "name": {"type": "string"},
                            "price": {"type": "string"},
                            "stock": {"type": "integer"},
                            "low_stock": {"type": "boolean"}
                        }
                    }
                }
            }
        },
        "ApplyMovementRequest": {
            "type": "object",
            "required": ["product_id", "kind", "reason"],
            "properties": {
                "product_id": {"type": "string", "format": "uuid"},
                "variant_id": {"type": "string", "format": "uuid"},
                "branch_id": {"type": "string", "format": "uuid"},
                "kind": {"type": "string", "enum": ["IN", "OUT", "SET"]},
                "quantity": {"type": "integer", "minimum": 0},
                "reason": {"type": "string"}
            }
        },
        "ApplyMovementResponse": {
            "type": "object",
            "properties": {
                "counter": {"$ref": "#/definitions/StockCounterResponse"},
                "movement": {"$ref": "#/definitions/MovementResponse"}
            }
        },
        "StockCounterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "product_id": {"type": "string", "format": "uuid"},
                "variant_id": {"type": "string", "format": "uuid"},
                "branch_id": {"type": "string", "format": "uuid"},
                "stock": {"type": "integer"}
            }
        },
        "MovementResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "product_id": {"type": "string", "format": "uuid"},
                "branch_id": {"type": "string", "format": "uuid"},
                "kind": {"type": "string"},
                "quantity": {"type": "integer"},
                "stock_before": {"type": "integer"},
                "stock_after": {"type": "integer"},
                "reason": {"type": "string"},
                "user_id": {"type": "string", "format": "uuid"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "PlaceOrderRequest": {
            "type": "object",
            "required": ["items", "payment_method"],
            "properties": {
                "branch_id": {"type": "string", "format": "uuid"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["product_id", "quantity"],
                        "properties": {
                            "product_id": {"type": "string", "format": "uuid"},
                            "variant_id": {"type": "string", "format": "uuid"},
                            "quantity": {"type": "integer", "minimum": 1},
                            "price": {"type": "string"}
                        }
                    }
                },
                "total": {"type": "string"},
                "payment_method": {"type": "string", "enum": ["CASH", "CARD", "TRANSFER"]},
                "cash_amount": {"type": "string"},
                "table_service": {"type": "boolean"},
                "table_number": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "SaleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "user_id": {"type": "string", "format": "uuid"},
                "branch_id": {"type": "string", "format": "uuid"},
                "total": {"type": "string"},
                "payment_method": {"type": "string"},
                "cash_amount": {"type": "string"},
                "change": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
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
	Title:            "POS Backend API",
	Description:      "Point of sale backend with a transactional per-branch stock ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
