package constants

const (
	MISSING_PARAMETER        = "Missed required parameter"
	VALIDATION_FAILED        = "Validation failed"
	UNAUTHORIZED             = "Unauthorized"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Id must be a number"
	WRONG_PASSWORD           = "Wrong password"
	INVALID_CREDENTIALS      = "Invalid email or password"
	EMAIL_ALREADY_USED       = "Email already registered"
	INVALID_RESET_CODE       = "Invalid or expired reset code"
	INVALID_INPUT            = "Invalid input"

	SEATS_ALREADY_RESERVED   = "Seats already reserved"
	SHOWTIME_ALREADY_STARTED = "Showtime already started"
	SHOWTIME_IN_PAST         = "The showtime start time must be in the future"
	HALL_HAS_OCCUPIED_SEATS  = "Hall has occupied seats on scheduled showtimes"
	SHOWTIME_HAS_OCCUPIED    = "Showtime has reserved seats, hall cannot be changed"
	USER_NOT_PROMOTABLE      = "Only users can be promoted"
	USER_NOT_DEMOTABLE       = "Only admins can be demoted"
	MOVIE_ALREADY_EXISTS     = "Movie with this title or poster already exists"
	HALL_ALREADY_EXISTS      = "Hall with this name already exists"
)

const (
	USER_REGISTERED        = "User registered successfully"
	LOGIN_SUCCESS          = "Logged in successfully"
	LOGOUT_SUCCESS         = "Logged out successfully"
	TOKEN_REFRESHED        = "Tokens refreshed successfully"
	PASSWORD_CHANGED       = "Password changed successfully"
	RESET_CODE_SENT        = "If the email is registered, a reset code has been sent"
	PASSWORD_RESET         = "Password reset successfully"
	USER_FETCHED           = "User fetched successfully"
	MOVIE_ADDED            = "Movie added successfully"
	MOVIES_FETCHED         = "Movies fetched successfully"
	MOVIE_FETCHED          = "Movie fetched successfully"
	MOVIE_CHANGED          = "Movie details changed successfully"
	MOVIE_DELETED          = "Movie deleted successfully"
	POSTER_SIGNED          = "Poster upload signed successfully"
	HALL_ADDED             = "Hall added successfully"
	HALLS_FETCHED          = "Halls fetched successfully"
	HALL_FETCHED           = "Hall fetched successfully"
	HALL_CHANGED           = "Hall details changed successfully"
	HALL_DELETED           = "Hall deleted successfully"
	SHOWTIME_ADDED         = "Showtime added successfully"
	SHOWTIMES_FETCHED      = "Showtimes fetched successfully"
	SHOWTIME_FETCHED       = "Showtime fetched successfully"
	SHOWTIME_CHANGED       = "Showtime details changed successfully"
	SHOWTIME_DELETED       = "Showtime deleted successfully"
	SEATS_FETCHED          = "Available seats fetched successfully"
	RESERVATION_ADDED      = "Reservation added successfully"
	RESERVATION_CANCELLED  = "Reservation cancelled successfully"
	RESERVATIONS_FETCHED   = "Reservations found successfully"
	USER_PROMOTED          = "User promoted successfully"
	ADMIN_DEMOTED          = "Admin demoted successfully"
	REPORTS_FETCHED        = "Reports found successfully"
	POSTER_UPLOAD_DISABLED = "Poster uploads are not configured"
)
