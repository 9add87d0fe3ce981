package services

// Services defined in this package:
// - AuthService: registration, login and the token-backed profile lookup
// - CounselorService: institution-scoped counselor directory
// - BookingService: booking creation, counselor listings and status updates
