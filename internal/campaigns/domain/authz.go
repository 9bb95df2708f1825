package domain

// IsCreator reports whether the account created the project.
func IsCreator(p Project, account Account) bool {
	return p.Creator == account
}

// IsBacker reports whether the account appears anywhere in the
// project's contribution ledger. Backing is historical fact: it stays
// true after a withdrawal zeroes the balance.
func IsBacker(contribs []Contribution, account Account) bool {
	for _, c := range contribs {
		if c.Backer == account {
			return true
		}
	}
	return false
}
