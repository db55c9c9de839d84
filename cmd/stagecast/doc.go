// Command stagecast publishes staged media assets to the remote video
// platform and drives the follow-on steps: readiness polling, caption
// submission, and the outcome webhook.
package main
