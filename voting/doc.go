// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting contains the coordinator, the decision engine behind
the vote endpoint.

Given (poll, option, session) it decides between three outcomes:

  - create: first vote by this session on this poll
  - switch: session already voted a different option; the old vote is
    deleted and decremented (one published delta) before the new vote
    is inserted and incremented (a second delta)
  - reject: session already voted this exact option; nothing mutates

Every committed counter change publishes exactly one TallyDelta, and
only after the corresponding tally write, so subscribers never observe
a count ahead of committed state.
*/
package voting
