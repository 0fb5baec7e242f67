package mocks

import "errors"

// MockPasswordHasher implements auth.PasswordHasher for testing
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)

	HashErr error
}

// Hash implements the PasswordHasher interface. The default prefixes the
// plaintext so tests can assert what was stored without real bcrypt cost.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}

	if m.HashErr != nil {
		return "", m.HashErr
	}

	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	CompareErr error

	// Call recording
	CompareCallCount  int
	CompareCalledWith []string
}

// Compare implements the PasswordVerifier interface. The default succeeds
// only when the hash is the MockPasswordHasher encoding of the plaintext.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	m.CompareCalledWith = append(m.CompareCalledWith, password)

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.CompareErr != nil {
		return m.CompareErr
	}

	if hashedPassword != "hashed:"+password {
		return errPasswordMismatch
	}

	return nil
}

var errPasswordMismatch = errors.New("password mismatch")
