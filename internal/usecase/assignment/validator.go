package assignment

import (
	"yacht-tracker/pkg/utils"
)

// normalizeAssignRequest trims and sanitizes the request in place and fills
// the device label from the device id.
func normalizeAssignRequest(req *AssignRequest) {
	req.CabinNumber = utils.SanitizeIdentifier(req.CabinNumber)
	req.CabinName = utils.SanitizeIdentifier(req.CabinName)
	req.GuestName = utils.SanitizeIdentifier(req.GuestName)
	req.DeviceID = utils.SanitizeIdentifier(req.DeviceID)
	req.DeviceName = utils.SanitizeIdentifier(req.DeviceName)
	req.Allergies = utils.SanitizeOptionalText(req.Allergies)
	req.SpecialRequests = utils.SanitizeOptionalText(req.SpecialRequests)

	if req.DeviceName == "" {
		req.DeviceName = req.DeviceID
	}
}
