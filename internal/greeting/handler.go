// Package greeting serves the static hello endpoint.
package greeting

import (
	"net/http"

	"bookshelf/internal/httpx"
)

// Message is the fixed greeting body.
const Message = "Hello From Spring Boot"

// Hello handles GET /hello.
func Hello(w http.ResponseWriter, r *http.Request) {
	httpx.Text(w, http.StatusOK, Message)
}
