package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidID           = "invalid_id"
	codeUnidentifiedUser    = "unidentified_user"
	codeForbidden           = "forbidden"
	codeEmptyCart           = "empty_cart"
	codeInsufficientStock   = "insufficient_stock"
	codeProductNotFound     = "product_not_found"
	codeProductNameRequired = "product_name_required"
	codeInvalidPrice        = "invalid_price"
	codeInvalidQuantity     = "invalid_quantity"
	codeDiscountNotFound    = "discount_not_found"
	codeDiscountRequired    = "discount_code_required"
	codeDiscountTaken       = "discount_code_taken"
	codeInvalidPercentOff   = "invalid_percent_off"
	codeInvalidUses         = "invalid_uses_remaining"
	codeNoInvoice           = "no_invoice"
	codeCheckoutFailed      = "checkout_failed"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
