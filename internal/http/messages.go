package http

// Flash messages shown to the user.
const (
	msgLoginRequired     = "Please log in to access this page."
	msgLoggedIn          = "Logged in successfully!"
	msgLoggedOut         = "You have been logged out."
	msgBadCredentials    = "Sorry, wrong username or password!"
	msgUnsafeRedirect    = "The page you came from is not on this site, so you were taken to your stream instead."
	msgRegistered        = "Registration successful, you can now log in."
	msgRegisterFailed    = "Error during registration, one or more fields do not meet minimum requirements."
	msgUsernameTaken     = "Sorry, this username is already taken."
	msgEmptyPost         = "A post needs some text or an image."
	msgPostTooLong       = "Your post is too long."
	msgEmptyComment      = "A comment cannot be empty or longer than 2000 characters."
	msgUserNotFound      = "User does not exist"
	msgAlreadyFriends    = "You are already friends with that user."
	msgInvalidFriend     = "Please enter the username of someone other than yourself."
	msgFriendAdded       = "Friend added."
	msgProfileUpdated    = "Profile updated."
	msgProfileInvalid    = "Profile fields must be at most 200 characters and the birthday must be a valid date."
	msgUploadTooLarge    = "The uploaded file is too large."
	msgUnknownFormAction = "Please use the login or registration form."
)
