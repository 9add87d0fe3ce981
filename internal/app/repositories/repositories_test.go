package repositories

import (
	"context"
	"testing"

	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(testutil.NewTestDB(t))
}

func createUser(t *testing.T, repo *UserRepository, email string, userType models.UserType, name, institution *string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         name,
		UserType:     userType,
		Institution:  institution,
	})
	require.NoError(t, err)
	return id
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	id, err := repos.UserRepository.CreateUser(ctx, &models.User{
		Email:            "a@x.com",
		PasswordHash:     "hash",
		Name:             strPtr("Alice"),
		EmergencyContact: strPtr("555-0100"),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	user, err := repos.UserRepository.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.UserTypeStudent, user.UserType, "empty role defaults to student")
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, "Alice", *user.Name)
	assert.Equal(t, "555-0100", *user.EmergencyContact)
	assert.Nil(t, user.Institution)
	assert.NotEmpty(t, user.CreatedAt)

	byID, err := repos.UserRepository.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestUserRepository_NotFound(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.UserRepository.GetUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.UserRepository.GetUserByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	repos := newTestRepos(t)
	createUser(t, repos.UserRepository, "a@x.com", models.UserTypeStudent, nil, nil)

	_, err := repos.UserRepository.GetUserByEmail(context.Background(), "A@X.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	createUser(t, repos.UserRepository, "a@x.com", models.UserTypeStudent, nil, nil)

	exists, err := repos.UserRepository.EmailExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repos.UserRepository.CreateUser(ctx, &models.User{Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	exists, err = repos.UserRepository.EmailExists(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_RejectsUnknownRole(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.UserRepository.CreateUser(context.Background(), &models.User{
		Email:        "a@x.com",
		PasswordHash: "hash",
		UserType:     models.UserType("superuser"),
	})
	assert.Error(t, err)
}

func TestUserRepository_GetCounselorsByInstitution(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	c1 := createUser(t, repos.UserRepository, "c1@x.com", models.UserTypeCounselor, strPtr("Dr. One"), strPtr("Uni A"))
	c2 := createUser(t, repos.UserRepository, "c2@x.com", models.UserTypeCounselor, strPtr("Dr. Two"), strPtr("Uni A"))
	createUser(t, repos.UserRepository, "c3@x.com", models.UserTypeCounselor, strPtr("Dr. Three"), strPtr("Uni B"))
	createUser(t, repos.UserRepository, "s1@x.com", models.UserTypeStudent, strPtr("Student"), strPtr("Uni A"))
	createUser(t, repos.UserRepository, "c4@x.com", models.UserTypeCounselor, strPtr("Dr. Case"), strPtr("uni a"))

	counselors, err := repos.UserRepository.GetCounselorsByInstitution(ctx, "Uni A")
	require.NoError(t, err)
	require.Len(t, counselors, 2)
	assert.Equal(t, c1, counselors[0].ID)
	assert.Equal(t, "Dr. One", *counselors[0].Name)
	assert.Equal(t, "c1@x.com", counselors[0].Email)
	assert.Equal(t, c2, counselors[1].ID)

	none, err := repos.UserRepository.GetCounselorsByInstitution(ctx, "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func newBooking(studentID, counselorID int64, date, time string) *models.Booking {
	return &models.Booking{
		StudentID:     studentID,
		CounselorID:   counselorID,
		PreferredDate: date,
		PreferredTime: time,
		SessionType:   "individual",
		Reason:        "stress",
	}
}

func TestBookingRepository_CreateAndList(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	student := createUser(t, repos.UserRepository, "s@x.com", models.UserTypeStudent, strPtr("Sam"), nil)
	counselor := createUser(t, repos.UserRepository, "c@x.com", models.UserTypeCounselor, strPtr("Dr. Lee"), strPtr("Uni A"))

	early := newBooking(student, counselor, "2025-09-26", "09:00")
	early.AnxietyLevel = strPtr("high")
	earlyID, err := repos.BookingRepository.CreateBooking(ctx, early)
	require.NoError(t, err)

	lateID, err := repos.BookingRepository.CreateBooking(ctx, newBooking(student, counselor, "2025-09-26", "14:00"))
	require.NoError(t, err)
	nextDayID, err := repos.BookingRepository.CreateBooking(ctx, newBooking(student, counselor, "2025-09-27", "08:00"))
	require.NoError(t, err)

	bookings, err := repos.BookingRepository.GetBookingsByCounselor(ctx, counselor)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, []int64{nextDayID, lateID, earlyID},
		[]int64{bookings[0].ID, bookings[1].ID, bookings[2].ID}, "date then time, descending")

	first := bookings[2]
	assert.Equal(t, models.BookingStatusPending, first.Status)
	assert.Equal(t, "high", *first.AnxietyLevel)
	assert.Nil(t, first.BurnoutLevel)
	assert.Equal(t, "Sam", *first.StudentName)
	assert.Equal(t, "s@x.com", first.StudentEmail)
	assert.Equal(t, "Dr. Lee", *first.CounselorName)

	byName, err := repos.BookingRepository.GetBookingsByCounselorName(ctx, "Dr. Lee")
	require.NoError(t, err)
	assert.Equal(t, bookings, byName)

	empty, err := repos.BookingRepository.GetBookingsByCounselor(ctx, student)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBookingRepository_NameLookupMergesSharedNames(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	student := createUser(t, repos.UserRepository, "s@x.com", models.UserTypeStudent, nil, nil)
	first := createUser(t, repos.UserRepository, "c1@x.com", models.UserTypeCounselor, strPtr("Dr. Kim"), nil)
	second := createUser(t, repos.UserRepository, "c2@x.com", models.UserTypeCounselor, strPtr("Dr. Kim"), nil)

	_, err := repos.BookingRepository.CreateBooking(ctx, newBooking(student, first, "2025-01-01", "10:00"))
	require.NoError(t, err)
	_, err = repos.BookingRepository.CreateBooking(ctx, newBooking(student, second, "2025-01-02", "10:00"))
	require.NoError(t, err)

	bookings, err := repos.BookingRepository.GetBookingsByCounselorName(ctx, "Dr. Kim")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestBookingRepository_UnknownParticipant(t *testing.T) {
	repos := newTestRepos(t)
	student := createUser(t, repos.UserRepository, "s@x.com", models.UserTypeStudent, nil, nil)

	_, err := repos.BookingRepository.CreateBooking(context.Background(), newBooking(student, 999, "2025-01-01", "10:00"))
	assert.ErrorIs(t, err, apperrors.ErrUnknownParticipant)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	student := createUser(t, repos.UserRepository, "s@x.com", models.UserTypeStudent, nil, nil)
	counselor := createUser(t, repos.UserRepository, "c@x.com", models.UserTypeCounselor, nil, nil)
	id, err := repos.BookingRepository.CreateBooking(ctx, newBooking(student, counselor, "2025-01-01", "10:00"))
	require.NoError(t, err)

	// Every transition is allowed, including leaving a terminal-looking status
	for _, status := range []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusPending,
		models.BookingStatusCancelled,
		models.BookingStatusConfirmed,
		models.BookingStatusConfirmed,
	} {
		updated, err := repos.BookingRepository.UpdateBookingStatus(ctx, id, status)
		require.NoError(t, err)
		assert.True(t, updated)

		booking, err := repos.BookingRepository.GetBookingByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, booking.Status)
	}

	_, err = repos.BookingRepository.UpdateBookingStatus(ctx, id, models.BookingStatus("archived"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidBookingStatus)

	booking, err := repos.BookingRepository.GetBookingByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	updated, err := repos.BookingRepository.UpdateBookingStatus(ctx, 999, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.False(t, updated)

	_, err = repos.BookingRepository.GetBookingByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
