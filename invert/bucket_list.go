package invert

// countBucketList buckets a fixed set of items (0..n-1) by an integer
// count in [0, maxCount], supporting O(1) insertion, O(1) removal, and
// O(1) "give me any item with count c" lookup via first[c]. This backs
// BuildKernel's Markowitz-merit search: the column (or row) with the
// fewest remaining active entries is always a cheap bucket away.
//
// The O(1) removal is the interesting part: deleting an item normally
// needs to know which bucket it's in, which would mean carrying a
// separate count-per-item array just to support unlink. Instead, last[i]
// does double duty: when i is the head of its bucket, last[i] encodes
// the bucket's count as -2-count (always <= -2, so it can never be
// confused with a valid previous-item index, which is always >= 0); when
// i is not a head, last[i] is simply the previous item's index. LinkDel
// inspects the sign to recover the count without a side table.
type countBucketList struct {
	first []int // first[c]: head item of bucket c, or -1 if empty
	next  []int // next[i]: next item after i in its bucket, or -1
	last  []int // last[i]: prev item, or -2-count if i is the bucket head
}

func newCountBucketList(n, maxCount int) *countBucketList {
	l := &countBucketList{
		first: make([]int, maxCount+1),
		next:  make([]int, n),
		last:  make([]int, n),
	}
	for c := range l.first {
		l.first[c] = -1
	}
	for i := range l.next {
		l.next[i] = -1
		l.last[i] = -1
	}
	return l
}

// LinkAdd inserts item at the head of bucket count.
func (l *countBucketList) LinkAdd(item, count int) {
	head := l.first[count]
	l.next[item] = head
	if head != -1 {
		l.last[head] = item
	}
	l.first[count] = item
	l.last[item] = -2 - count
}

// LinkDel removes item from whichever bucket it currently occupies.
func (l *countBucketList) LinkDel(item int) {
	nxt := l.next[item]
	if l.last[item] <= -2 {
		count := -2 - l.last[item]
		l.first[count] = nxt
		if nxt != -1 {
			l.last[nxt] = -2 - count
		}
		return
	}
	prev := l.last[item]
	l.next[prev] = nxt
	if nxt != -1 {
		l.last[nxt] = prev
	}
}

// Move removes item from its current bucket and reinserts it at
// newCount; a no-op shortcut would require knowing the old count, which
// callers already do when an entry count changes by +/-1, so this is
// just LinkDel followed by LinkAdd for clarity at call sites.
func (l *countBucketList) Move(item, newCount int) {
	l.LinkDel(item)
	l.LinkAdd(item, newCount)
}

// First returns the head item of bucket count, or -1 if empty.
func (l *countBucketList) First(count int) int { return l.first[count] }

// Next returns the item following i in its bucket, or -1.
func (l *countBucketList) Next(i int) int { return l.next[i] }
