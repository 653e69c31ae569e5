package session

import "fmt"

func invoiceKey(userID string) string {
	return fmt.Sprintf("supermart:invoice:%s", userID)
}

func flashKey(userID string) string {
	return fmt.Sprintf("supermart:flash:%s", userID)
}
