package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>Minibank API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPISpec = `openapi: 3.0.3
info:
  title: Minibank API
  description: Accounts and transfers behind JWT bearer auth.
  version: "1.0"
servers:
  - url: /
paths:
  /api/health:
    get:
      summary: Liveness probe
      responses:
        "200":
          description: Service is up
  /api/auth/register:
    post:
      summary: Register a new user
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [email, password]
              properties:
                email: { type: string, format: email }
                password: { type: string }
      responses:
        "201":
          description: User created
          content:
            application/json:
              schema:
                type: object
                properties:
                  id: { type: string }
                  email: { type: string }
        "400":
          description: Invalid payload or duplicate email
  /api/auth/login:
    post:
      summary: Exchange credentials for an access token
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [email, password]
              properties:
                email: { type: string, format: email }
                password: { type: string }
      responses:
        "200":
          description: Token issued
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/TokenResponse"
        "401":
          description: Invalid email or password
  /api/auth/token:
    post:
      summary: Issue a token for a known user id
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [user_id]
              properties:
                user_id: { type: string }
      responses:
        "200":
          description: Token issued
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/TokenResponse"
        "404":
          description: Unknown user id
  /api/accounts:
    post:
      summary: Create an account
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: { type: string }
      responses:
        "201":
          description: Account created
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Account"
        "401":
          description: Missing or invalid bearer token
  /api/accounts/{id}:
    get:
      summary: Fetch an account
      security:
        - bearerAuth: []
      parameters:
        - $ref: "#/components/parameters/AccountID"
      responses:
        "200":
          description: The account
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Account"
        "404":
          description: Account not found
  /api/accounts/{id}/deposit:
    post:
      summary: Deposit into an account
      security:
        - bearerAuth: []
      parameters:
        - $ref: "#/components/parameters/AccountID"
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/AmountRequest"
      responses:
        "200":
          description: Updated account
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Account"
        "400":
          description: Invalid amount
        "404":
          description: Account not found
  /api/accounts/{id}/withdraw:
    post:
      summary: Withdraw from an account
      security:
        - bearerAuth: []
      parameters:
        - $ref: "#/components/parameters/AccountID"
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/AmountRequest"
      responses:
        "200":
          description: Updated account
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Account"
        "400":
          description: Insufficient funds
        "404":
          description: Account not found
  /api/transfers:
    post:
      summary: Transfer between accounts
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [from_account_id, to_account_id, amount]
              properties:
                from_account_id: { type: integer, format: int64 }
                to_account_id: { type: integer, format: int64 }
                amount: { type: integer, format: int64 }
      responses:
        "200":
          description: Transfer applied
        "400":
          description: Invalid amount or insufficient funds
        "404":
          description: Either account not found
components:
  parameters:
    AccountID:
      name: id
      in: path
      required: true
      schema:
        type: integer
        format: int64
  schemas:
    Account:
      type: object
      properties:
        id: { type: integer, format: int64 }
        name: { type: string }
        balance: { type: integer, format: int64 }
    AmountRequest:
      type: object
      required: [amount]
      properties:
        amount: { type: integer, format: int64 }
    TokenResponse:
      type: object
      properties:
        access_token: { type: string }
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml", []byte(openAPISpec))
}
