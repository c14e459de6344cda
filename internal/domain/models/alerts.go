package models

// Operator facing messages shown by the console and returned by the HTTP API.
const (
	AlertMissingDetails   = "Please fill customer details and select at least one day."
	AlertInvalidCustomer  = "Please enter valid customer name and 10-digit mobile number."
	AlertInvalidPhone     = "Please enter a valid 10-digit phone number."
	AlertNoDaysForBill    = "Please select at least one day to generate a bill."
	AlertNoDaysForPDF     = "Please select at least one day to generate a PDF."
	AlertSearchFailed     = "Error searching customers. Please try again."
	AlertSubmitted        = "✅ Data submission initiated! Please wait a moment for the data to reflect."
	AlertInvalidQuantity  = "Please enter a valid number of liters."
	AlertInvalidPrice     = "Please enter a valid price per liter."
	AlertSendUnavailable  = "Direct WhatsApp sending is not configured."
	AlertSendFailed       = "Unable to send the WhatsApp message."
	AlertInvoiceFailed    = "Unable to generate the PDF."
	AlertInvalidBillInput = "Invalid bill request."
)
