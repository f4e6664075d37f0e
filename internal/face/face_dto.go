package face

type RegisterFaceRequest struct {
	Descriptor Descriptor `json:"descriptor" binding:"required"`
}

// VerifyFaceRequest compares Descriptor against a stored profile, or
// DescriptorA against DescriptorB when both are sent.
type VerifyFaceRequest struct {
	Descriptor  Descriptor `json:"descriptor"`
	UserID      string     `json:"user_id" binding:"omitempty,uuid"`
	DescriptorA Descriptor `json:"descriptor_a"`
	DescriptorB Descriptor `json:"descriptor_b"`
}

type FaceStatusResponse struct {
	UserID       string  `json:"user_id"`
	HasFace      bool    `json:"has_face"`
	RegisteredAt *string `json:"face_registered_at,omitempty"`
}

type DescriptorResponse struct {
	UserID     string     `json:"user_id"`
	Descriptor Descriptor `json:"descriptor"`
}

type UserFaceResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	HasFace      bool    `json:"has_face"`
	RegisteredAt *string `json:"face_registered_at,omitempty"`
}
