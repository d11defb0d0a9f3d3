package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("GET /swagger/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("GET /swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Transfer Engine API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Transfer Engine API",
    "version": "1.0.0"
  },
  "paths": {
    "/transfer-funds": {
      "post": {
        "summary": "Transfer funds between two accounts",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fromAccountId", "toAccountId", "amount"],
                "properties": {
                  "fromAccountId": {"type": "string"},
                  "toAccountId": {"type": "string"},
                  "amount": {"type": "string", "example": "30.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer successful"},
          "400": {"description": "Invalid body, identifiers or amount"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance"},
          "503": {"description": "Account lock or store unavailable"},
          "500": {"description": "Transfer could not be persisted"}
        }
      }
    },
    "/accounts/{id}": {
      "get": {
        "summary": "Get account balance",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Account fetched"},
          "404": {"description": "Account not found"},
          "503": {"description": "Store unavailable"}
        }
      }
    },
    "/healthz": {
      "get": {
        "summary": "Liveness probe",
        "responses": {
          "200": {"description": "OK"}
        }
      }
    },
    "/metrics": {
      "get": {
        "summary": "Prometheus metrics",
        "responses": {
          "200": {"description": "Metrics in text exposition format"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Response": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "code": {
            "type": "string",
            "enum": ["VALIDATION_FAILED", "ACCOUNT_NOT_FOUND", "INSUFFICIENT_FUNDS", "SERVICE_UNAVAILABLE", "TRANSFER_FAILED"]
          },
          "message": {"type": "string"},
          "data": {"type": "object"},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
