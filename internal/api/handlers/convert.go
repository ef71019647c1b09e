package handlers

import (
	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/services"
)

func latLon(c *domain.Coordinates) (lat, lon *float64) {
	if c == nil {
		return nil, nil
	}
	la, lo := c.Lat, c.Lon
	return &la, &lo
}

func donorResponse(d *domain.Donor) dto.DonorResponse {
	lat, lon := latLon(d.Coords)
	return dto.DonorResponse{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		Latitude:     lat,
		Longitude:    lon,
		BusinessType: d.BusinessType,
		CreatedAt:    d.CreatedAt,
	}
}

func recipientResponse(r *domain.Recipient) dto.RecipientResponse {
	lat, lon := latLon(r.Coords)
	categories := r.CategoriesNeeded
	if categories == nil {
		categories = []string{}
	}
	return dto.RecipientResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		Latitude:           lat,
		Longitude:          lon,
		OrganizationType:   r.OrganizationType,
		CategoriesNeeded:   categories,
		StorageCapacityLbs: r.StorageCapacityLbs,
		CreatedAt:          r.CreatedAt,
	}
}

func driverResponse(d *domain.Driver) dto.DriverResponse {
	lat, lon := latLon(d.Coords)
	return dto.DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		CurrentLocation: d.CurrentLocation,
		Latitude:        lat,
		Longitude:       lon,
		DriverType:      string(d.Type),
		Available:       d.Available,
		CompletionRate:  d.CompletionRate,
		VolunteerPoints: d.VolunteerPoints,
		CreatedAt:       d.CreatedAt,
	}
}

func donationResponse(d *domain.Donation) dto.DonationResponse {
	lat, lon := latLon(d.Coords)
	return dto.DonationResponse{
		ID:                 d.ID,
		DonorID:            d.DonorID,
		FoodType:           d.FoodType,
		FoodCategory:       string(d.Category),
		QuantityLbs:        d.QuantityLbs,
		PickupWindowStart:  d.PickupStart,
		PickupWindowEnd:    d.PickupEnd,
		Address:            d.Address,
		Latitude:           lat,
		Longitude:          lon,
		StorageRequirement: string(d.Storage),
		PerishabilityScore: d.PerishabilityScore,
		Status:             string(d.Status),
		PostedAt:           d.PostedAt,
		CompletedAt:        d.CompletedAt,
	}
}

func matchResponses(ms []domain.MatchResult) []dto.MatchResponse {
	out := make([]dto.MatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.MatchResponse{
			RecipientID:   m.RecipientID,
			RecipientName: m.RecipientName,
			Score:         m.Score,
			DistanceMiles: m.DistanceMiles,
		})
	}
	return out
}

func perishabilityResponse(a services.PerishabilityAssessment) dto.PerishabilityResponse {
	return dto.PerishabilityResponse{
		Deterministic:  a.Deterministic,
		External:       a.External,
		ExternalSource: a.ExternalSource,
		Final:          a.Final,
	}
}

func instructionResponses(in []domain.Instruction) []dto.InstructionResponse {
	out := make([]dto.InstructionResponse, 0, len(in))
	for _, i := range in {
		out = append(out, dto.InstructionResponse{Instruction: i.Text, Distance: i.Distance, Duration: i.Duration})
	}
	return out
}

func estimateResponse(e domain.RouteEstimate) dto.EstimateResponse {
	res := dto.EstimateResponse{
		DurationMinutes: e.DurationMinutes,
		DistanceMiles:   e.DistanceMiles,
		Instructions:    instructionResponses(e.Instructions),
		Source:          e.Source,
	}
	if e.Approach != nil {
		approach := estimateResponse(*e.Approach)
		res.Approach = &approach
	}
	return res
}

func routeResponse(r *domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:                       r.ID,
		DonationID:               r.DonationID,
		DriverID:                 r.DriverID,
		RecipientID:              r.RecipientID,
		Status:                   string(r.Status),
		EstimatedDurationMinutes: r.EstimatedMinutes,
		EstimatedDistanceMiles:   r.EstimatedMiles,
		Instructions:             instructionResponses(r.Instructions),
		StartedAt:                r.StartedAt,
		CompletedAt:              r.CompletedAt,
		CreatedAt:                r.CreatedAt,
	}
}

func impactResponse(m domain.ImpactMetrics) dto.ImpactResponse {
	return dto.ImpactResponse{
		LbsRescued:         m.PoundsRescued,
		Meals:              m.Meals,
		CO2eAvoided:        m.CO2eAvoidedLbs,
		CH4AvoidedTons:     m.CH4AvoidedTons,
		LandfillSpaceSaved: m.LandfillCubicYards,
	}
}
