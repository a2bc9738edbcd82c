package runtime

// AccountIterator walks the positional account list of an invocation
type AccountIterator struct {
	accounts []*AccountInfo
	next     int
}

func NewAccountIterator(accounts []*AccountInfo) *AccountIterator {
	return &AccountIterator{
		accounts: accounts,
	}
}

// Next returns the next account.
//
// Returns ErrNotEnoughAccountKeys once the list is exhausted.
func (it *AccountIterator) Next() (*AccountInfo, error) {
	if it.next >= len(it.accounts) {
		return nil, ErrNotEnoughAccountKeys
	}

	account := it.accounts[it.next]
	it.next++
	return account, nil
}

// Remaining returns the number of accounts not yet consumed
func (it *AccountIterator) Remaining() int {
	return len(it.accounts) - it.next
}
