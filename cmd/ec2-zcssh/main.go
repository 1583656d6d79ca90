// ec2-zcssh - resolve EC2 instances to IPs and open a multi-pane SSH session.
package main

func main() {
	Execute()
}
